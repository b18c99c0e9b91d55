package schema

import "github.com/ericfisherdev/marquee/internal/domain/model"

var definitions = []Schema{
	{
		Name:  model.ContentTypeAuthor,
		Title: "Author",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true, MaxLength: 80},
			{Name: "slug", Title: "Slug", Type: FieldSlug, Required: true, MaxLength: 96, Source: "name"},
			{Name: "image", Title: "Image", Type: FieldImage},
			{Name: "bio", Title: "Bio", Type: FieldText, MaxLength: 600},
		},
	},
	{
		Name:  model.ContentTypeDivision,
		Title: "Division",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: FieldString, Required: true, MaxLength: 80},
			{Name: "slug", Title: "Slug", Type: FieldSlug, Required: true, MaxLength: 96, Source: "title"},
			{Name: "tagline", Title: "Tagline", Type: FieldString, MaxLength: 120},
			{Name: "description", Title: "Description", Type: FieldText, MaxLength: 1000},
			{Name: "logo", Title: "Logo", Type: FieldImage},
			{Name: "heroImage", Title: "Hero image", Type: FieldImage},
			{Name: "heroVideo", Title: "Hero video", Type: FieldVideo},
			{Name: "author", Title: "Author", Type: FieldReference, To: []model.ContentType{model.ContentTypeAuthor}},
			{Name: "order", Title: "Display order", Type: FieldNumber},
		},
	},
	{
		Name:  model.ContentTypePortfolioProject,
		Title: "Portfolio project",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: FieldString, Required: true, MaxLength: 100},
			{Name: "slug", Title: "Slug", Type: FieldSlug, Required: true, MaxLength: 96, Source: "title"},
			{Name: "client", Title: "Client", Type: FieldString, MaxLength: 100},
			{Name: "year", Title: "Year", Type: FieldNumber},
			{Name: "summary", Title: "Summary", Type: FieldText, MaxLength: 500},
			{Name: "division", Title: "Division", Type: FieldReference, Required: true, To: []model.ContentType{model.ContentTypeDivision}},
			{Name: "coverImage", Title: "Cover image", Type: FieldImage, Required: true},
			{Name: "video", Title: "Video", Type: FieldVideo},
			{Name: "publishedAt", Title: "Published at", Type: FieldDatetime},
		},
	},
	{
		Name:  model.ContentTypeNewsArticle,
		Title: "News article",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: FieldString, Required: true, MaxLength: 120},
			{Name: "slug", Title: "Slug", Type: FieldSlug, Required: true, MaxLength: 96, Source: "title"},
			{Name: "excerpt", Title: "Excerpt", Type: FieldText, MaxLength: 300},
			{Name: "publishedAt", Title: "Published at", Type: FieldDatetime, Required: true},
			{Name: "mainImage", Title: "Main image", Type: FieldImage},
			{Name: "author", Title: "Author", Type: FieldReference, To: []model.ContentType{model.ContentTypeAuthor}},
			{Name: "body", Title: "Body", Type: FieldBlocks},
		},
	},
	{
		Name:  model.ContentTypeTeamMember,
		Title: "Team member",
		Fields: []Field{
			{Name: "name", Title: "Name", Type: FieldString, Required: true, MaxLength: 80},
			{Name: "slug", Title: "Slug", Type: FieldSlug, MaxLength: 96, Source: "name"},
			{Name: "role", Title: "Role", Type: FieldString, Required: true, MaxLength: 80},
			{Name: "bio", Title: "Bio", Type: FieldText, MaxLength: 600},
			{Name: "photo", Title: "Photo", Type: FieldImage},
			{Name: "order", Title: "Display order", Type: FieldNumber},
		},
	},
	{
		Name:      model.ContentTypeHomePage,
		Title:     "Home page",
		Singleton: true,
		Fields: []Field{
			{Name: "heroTitle", Title: "Hero title", Type: FieldString, Required: true, MaxLength: 80},
			{Name: "heroSubtitle", Title: "Hero subtitle", Type: FieldString, MaxLength: 160},
			{Name: "heroImage", Title: "Hero image", Type: FieldImage},
			{Name: "heroVideo", Title: "Hero video", Type: FieldVideo},
			{Name: "intro", Title: "Intro", Type: FieldText, MaxLength: 800},
			{Name: "featuredDivisions", Title: "Featured divisions", Type: FieldArray, To: []model.ContentType{model.ContentTypeDivision}},
			{Name: "featuredProjects", Title: "Featured projects", Type: FieldArray, To: []model.ContentType{model.ContentTypePortfolioProject}},
		},
	},
	{
		Name:  model.ContentTypePage,
		Title: "Page",
		Fields: []Field{
			{Name: "title", Title: "Title", Type: FieldString, Required: true, MaxLength: 100},
			{Name: "slug", Title: "Slug", Type: FieldSlug, Required: true, MaxLength: 96, Source: "title"},
			{Name: "description", Title: "Description", Type: FieldText, MaxLength: 300},
			{Name: "heroImage", Title: "Hero image", Type: FieldImage},
			{Name: "body", Title: "Body", Type: FieldBlocks},
		},
	},
	{
		Name:      model.ContentTypeSiteSettings,
		Title:     "Site settings",
		Singleton: true,
		Fields: []Field{
			{Name: "siteTitle", Title: "Site title", Type: FieldString, Required: true, MaxLength: 60},
			{Name: "tagline", Title: "Tagline", Type: FieldString, MaxLength: 120},
			{Name: "contactEmail", Title: "Contact email", Type: FieldEmail},
			{Name: "phone", Title: "Phone", Type: FieldString, MaxLength: 40},
			{Name: "address", Title: "Address", Type: FieldText, MaxLength: 300},
			{Name: "socialLinks", Title: "Social links", Type: FieldArray},
		},
	},
}
