// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/marquee/internal/domain/model"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
)

// ErrNotFound is returned when a requested record does not exist or is not
// published.
var ErrNotFound = errors.New("content not found")

const (
	homeFeaturedLimit = 6
	homeNewsLimit     = 3
)

// ContentService is the single fetch-then-map helper behind every page: fetch
// documents of a content type, decode them into typed records, resolve
// references. It depends only on the ContentSource port.
type ContentService struct {
	source driven.ContentSource
}

// NewContentService creates a new ContentService reading from source.
func NewContentService(source driven.ContentSource) *ContentService {
	return &ContentService{source: source}
}

// Documents returns every published document of the given type.
func (s *ContentService) Documents(ctx context.Context, contentType model.ContentType) ([]model.Document, error) {
	return s.source.ListByType(ctx, contentType)
}

// Document returns the published document of the given type addressed by
// target. target is matched against slugs first; records without a slug are
// linked by ID, so an ID of the same type is accepted as well.
func (s *ContentService) Document(ctx context.Context, contentType model.ContentType, target string) (model.Document, error) {
	if target == "" {
		return model.Document{}, ErrNotFound
	}

	doc, err := s.source.GetBySlug(ctx, contentType, target)
	if err != nil {
		return model.Document{}, err
	}
	if doc != nil {
		return *doc, nil
	}

	doc, err = s.source.GetByID(ctx, target)
	if err != nil {
		return model.Document{}, err
	}
	if doc == nil || doc.Type != contentType {
		return model.Document{}, ErrNotFound
	}

	return *doc, nil
}

// ListContent fetches every published record of a content type and decodes
// it into T. Records that fail to decode are logged and skipped.
func ListContent[T any](ctx context.Context, s *ContentService, contentType model.ContentType) ([]T, error) {
	docs, err := s.Documents(ctx, contentType)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		record, err := model.Decode[T](doc)
		if err != nil {
			slog.Warn("skipping undecodable document", "type", contentType, "id", doc.ID, "error", err)
			continue
		}
		out = append(out, record)
	}

	return out, nil
}

// ContentBySlug fetches one record by slug (or, failing that, by ID) and decodes it into T.
// Returns ErrNotFound when nothing matches.
func ContentBySlug[T any](ctx context.Context, s *ContentService, contentType model.ContentType, target string) (T, error) {
	var zero T

	doc, err := s.Document(ctx, contentType, target)
	if err != nil {
		return zero, err
	}

	return model.Decode[T](doc)
}

// Resolve follows a reference and decodes the target into T. A nil or
// dangling reference yields nil, nil.
func Resolve[T any](ctx context.Context, s *ContentService, ref *model.Reference) (*T, error) {
	if ref == nil || ref.Ref == "" {
		return nil, nil
	}

	doc, err := s.source.GetByID(ctx, ref.Ref)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	record, err := model.Decode[T](*doc)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// singleton fetches a singleton document (home page, site settings). A
// missing singleton yields the zero value.
func singleton[T any](ctx context.Context, s *ContentService, contentType model.ContentType) (T, error) {
	var zero T

	doc, err := s.source.GetByID(ctx, string(contentType))
	if err != nil {
		return zero, err
	}
	if doc == nil {
		return zero, nil
	}

	return model.Decode[T](*doc)
}

// SiteSettings returns the site settings singleton, or zero settings when it
// is not published.
func (s *ContentService) SiteSettings(ctx context.Context) (model.SiteSettings, error) {
	return singleton[model.SiteSettings](ctx, s, model.ContentTypeSiteSettings)
}

// HomeContent is everything the home page renders.
type HomeContent struct {
	Page      model.HomePage
	Divisions []model.Division
	Projects  []model.PortfolioProject
	News      []model.NewsArticle
}

// Home assembles the home page. The home singleton and the three lists are
// independent reads and run concurrently.
func (s *ContentService) Home(ctx context.Context) (HomeContent, error) {
	var (
		home      model.HomePage
		divisions []model.Division
		projects  []model.PortfolioProject
		news      []model.NewsArticle
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		home, err = singleton[model.HomePage](gctx, s, model.ContentTypeHomePage)
		return err
	})
	g.Go(func() error {
		var err error
		divisions, err = ListContent[model.Division](gctx, s, model.ContentTypeDivision)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = ListContent[model.PortfolioProject](gctx, s, model.ContentTypePortfolioProject)
		return err
	})
	g.Go(func() error {
		var err error
		news, err = ListContent[model.NewsArticle](gctx, s, model.ContentTypeNewsArticle)
		return err
	})
	if err := g.Wait(); err != nil {
		return HomeContent{}, fmt.Errorf("load home page: %w", err)
	}

	SortDivisions(divisions)

	content := HomeContent{
		Page:      home,
		Divisions: pickFeatured(divisions, home.FeaturedDivisions, func(d model.Division) string { return d.ID }),
		Projects:  pickFeatured(projects, home.FeaturedProjects, func(p model.PortfolioProject) string { return p.ID }),
		News:      news,
	}
	if len(content.Projects) > homeFeaturedLimit {
		content.Projects = content.Projects[:homeFeaturedLimit]
	}
	if len(content.News) > homeNewsLimit {
		content.News = content.News[:homeNewsLimit]
	}

	return content, nil
}

// pickFeatured returns the records named by refs, in ref order, skipping
// dangling refs. With no refs, all records are featured.
func pickFeatured[T any](all []T, refs []model.Reference, id func(T) string) []T {
	if len(refs) == 0 {
		return all
	}

	byID := make(map[string]T, len(all))
	for _, record := range all {
		byID[id(record)] = record
	}

	out := make([]T, 0, len(refs))
	for _, ref := range refs {
		if record, ok := byID[ref.Ref]; ok {
			out = append(out, record)
		}
	}
	return out
}

// SortDivisions orders divisions by their display order, then title.
func SortDivisions(divisions []model.Division) {
	sort.SliceStable(divisions, func(i, j int) bool {
		if divisions[i].Order != divisions[j].Order {
			return divisions[i].Order < divisions[j].Order
		}
		return divisions[i].Title < divisions[j].Title
	})
}

// SortTeam orders team members by their display order, then name.
func SortTeam(members []model.TeamMember) {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Order != members[j].Order {
			return members[i].Order < members[j].Order
		}
		return members[i].Name < members[j].Name
	})
}

// DivisionDetail is a division with its author and projects.
type DivisionDetail struct {
	Division model.Division
	Author   *model.Author
	Projects []model.PortfolioProject
}

// Division loads a division by slug or ID along with its author and the
// projects that reference it.
func (s *ContentService) Division(ctx context.Context, target string) (DivisionDetail, error) {
	division, err := ContentBySlug[model.Division](ctx, s, model.ContentTypeDivision, target)
	if err != nil {
		return DivisionDetail{}, err
	}

	detail := DivisionDetail{Division: division}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Author, err = Resolve[model.Author](gctx, s, division.Author)
		return err
	})
	g.Go(func() error {
		projects, err := ListContent[model.PortfolioProject](gctx, s, model.ContentTypePortfolioProject)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if p.Division != nil && p.Division.Ref == division.ID {
				detail.Projects = append(detail.Projects, p)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return DivisionDetail{}, fmt.Errorf("load division %s: %w", division.ID, err)
	}

	return detail, nil
}

// ProjectDetail is a portfolio project with its division.
type ProjectDetail struct {
	Project  model.PortfolioProject
	Division *model.Division
}

// Project loads a portfolio project by slug or ID along with its division.
func (s *ContentService) Project(ctx context.Context, target string) (ProjectDetail, error) {
	project, err := ContentBySlug[model.PortfolioProject](ctx, s, model.ContentTypePortfolioProject, target)
	if err != nil {
		return ProjectDetail{}, err
	}

	division, err := Resolve[model.Division](ctx, s, project.Division)
	if err != nil {
		return ProjectDetail{}, fmt.Errorf("load project %s division: %w", project.ID, err)
	}

	return ProjectDetail{Project: project, Division: division}, nil
}

// ArticleDetail is a news article with its author.
type ArticleDetail struct {
	Article model.NewsArticle
	Author  *model.Author
}

// Article loads a news article by slug or ID along with its author.
func (s *ContentService) Article(ctx context.Context, target string) (ArticleDetail, error) {
	article, err := ContentBySlug[model.NewsArticle](ctx, s, model.ContentTypeNewsArticle, target)
	if err != nil {
		return ArticleDetail{}, err
	}

	author, err := Resolve[model.Author](ctx, s, article.Author)
	if err != nil {
		return ArticleDetail{}, fmt.Errorf("load article %s author: %w", article.ID, err)
	}

	return ArticleDetail{Article: article, Author: author}, nil
}
