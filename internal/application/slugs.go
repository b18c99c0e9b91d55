package application

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ericfisherdev/marquee/internal/domain/model"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
	"github.com/ericfisherdev/marquee/internal/domain/schema"
)

// MaxSlugLength caps generated slugs, matching the CMS slug field default.
const MaxSlugLength = 96

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slugify derives a URL-safe slug from a title: lower-cased, diacritics
// stripped, runs of other characters collapsed to one hyphen.
func Slugify(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// ValidSlug reports whether s is a non-empty, URL-safe slug.
func ValidSlug(s string) bool {
	return len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}

// SlugProblem classifies what is wrong with a document's slug.
type SlugProblem string

const (
	SlugMissing   SlugProblem = "missing"
	SlugInvalid   SlugProblem = "invalid"
	SlugDuplicate SlugProblem = "duplicate"
)

// SlugIssue is one document whose slug needs attention.
type SlugIssue struct {
	ID         string
	Type       model.ContentType
	Slug       string
	Problem    SlugProblem
	Suggestion string
}

func (i SlugIssue) String() string {
	if i.Slug == "" {
		return fmt.Sprintf("%s %s: %s slug, suggest %q", i.Type, i.ID, i.Problem, i.Suggestion)
	}
	return fmt.Sprintf("%s %s: %s slug %q, suggest %q", i.Type, i.ID, i.Problem, i.Slug, i.Suggestion)
}

// SlugChecker audits slugs across every content type that has one.
type SlugChecker struct {
	source driven.ContentSource
	writer driven.ContentWriter
}

// NewSlugChecker creates a SlugChecker. writer may be nil when only Check is
// used.
func NewSlugChecker(source driven.ContentSource, writer driven.ContentWriter) *SlugChecker {
	return &SlugChecker{source: source, writer: writer}
}

// Check returns every slug issue, ordered by type then ID. Suggestions are
// unique within a type, so applying all of them never introduces a
// duplicate.
func (c *SlugChecker) Check(ctx context.Context) ([]SlugIssue, error) {
	var issues []SlugIssue

	for _, ct := range model.AllContentTypes() {
		s, ok := schema.Lookup(ct)
		if !ok || !s.HasSlug() {
			continue
		}

		docs, err := c.source.ListByType(ctx, ct)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", ct, err)
		}

		issues = append(issues, checkType(ct, s.SlugSource(), docs)...)
	}

	return issues, nil
}

func checkType(ct model.ContentType, sourceField string, docs []model.Document) []SlugIssue {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	taken := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if ValidSlug(doc.Slug) {
			taken[doc.Slug] = true
		}
	}

	var issues []SlugIssue
	firstOwner := make(map[string]string, len(docs))
	for _, doc := range docs {
		var problem SlugProblem
		switch {
		case doc.Slug == "":
			problem = SlugMissing
		case !ValidSlug(doc.Slug):
			problem = SlugInvalid
		default:
			if _, seen := firstOwner[doc.Slug]; !seen {
				firstOwner[doc.Slug] = doc.ID
				continue
			}
			problem = SlugDuplicate
		}

		base := Slugify(titleOf(doc, sourceField))
		if base == "" || problem == SlugDuplicate {
			base = Slugify(strings.TrimSuffix(base+"-"+doc.ID, "-"))
		}
		suggestion := uniqueSlug(base, taken)
		taken[suggestion] = true

		issues = append(issues, SlugIssue{
			ID:         doc.ID,
			Type:       ct,
			Slug:       doc.Slug,
			Problem:    problem,
			Suggestion: suggestion,
		})
	}

	return issues
}

// uniqueSlug appends -2, -3, ... to base until it is not taken.
func uniqueSlug(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		candidate := base
		if len(candidate)+len(suffix) > MaxSlugLength {
			candidate = strings.TrimRight(candidate[:MaxSlugLength-len(suffix)], "-")
		}
		candidate += suffix
		if !taken[candidate] {
			return candidate
		}
	}
}

func titleOf(doc model.Document, field string) string {
	fields, err := doc.Fields()
	if err != nil {
		return ""
	}
	title, _ := fields[field].(string)
	return title
}

// Fix writes each issue's suggested slug back through the writer. It stops
// at the first failed write.
func (c *SlugChecker) Fix(ctx context.Context, issues []SlugIssue) (int, error) {
	if c.writer == nil {
		return 0, fmt.Errorf("slug fix: no writer configured")
	}

	fixed := 0
	for _, issue := range issues {
		doc, err := c.source.GetByID(ctx, issue.ID)
		if err != nil {
			return fixed, fmt.Errorf("load %s: %w", issue.ID, err)
		}
		if doc == nil {
			slog.Warn("document vanished before slug fix", "id", issue.ID)
			continue
		}

		updated, err := doc.WithSlug(issue.Suggestion)
		if err != nil {
			return fixed, err
		}
		if err := c.writer.CreateOrReplace(ctx, updated); err != nil {
			return fixed, fmt.Errorf("write %s: %w", issue.ID, err)
		}

		slog.Info("slug fixed", "type", issue.Type, "id", issue.ID, "slug", issue.Suggestion)
		fixed++
	}

	return fixed, nil
}
