package model

// ContentType names a CMS document type. The value matches the document's
// _type field.
type ContentType string

const (
	ContentTypeDivision         ContentType = "division"
	ContentTypePortfolioProject ContentType = "portfolioProject"
	ContentTypeNewsArticle      ContentType = "newsArticle"
	ContentTypeTeamMember       ContentType = "teamMember"
	ContentTypeAuthor           ContentType = "author"
	ContentTypeHomePage         ContentType = "homePage"
	ContentTypePage             ContentType = "page"
	ContentTypeSiteSettings     ContentType = "siteSettings"
)

// AllContentTypes returns every content type the site reads, in sync order.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentTypeSiteSettings,
		ContentTypeHomePage,
		ContentTypeAuthor,
		ContentTypeDivision,
		ContentTypePortfolioProject,
		ContentTypeNewsArticle,
		ContentTypeTeamMember,
		ContentTypePage,
	}
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	for _, known := range AllContentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Singleton reports whether exactly one document of this type exists, stored
// under a document ID equal to the type name.
func (t ContentType) Singleton() bool {
	return t == ContentTypeHomePage || t == ContentTypeSiteSettings
}
