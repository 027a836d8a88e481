package services

import (
	"context"
	"fmt"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
)

// DefaultMatchThreshold is the fuzzy-ratio cutoff separating "same
// real-world entity" from a near miss. Empirical balance between false
// merges and missed duplicates; candidates must score strictly above it.
const DefaultMatchThreshold = 85

// Entry-type and field names of the resolver's targets.
const (
	companyEntryType = "Company"
	contactEntryType = "Contact"

	defaultCompanyNameField = "CompanyName"
	firstNameField          = "FirstName"
	lastNameField           = "LastName"
	primaryEmailField       = "Email"
	fallbackEmailField      = "EmailAddress"
)

// Match is a resolved existing record with its similarity score.
type Match struct {
	Row   dealcloud.Row
	Score int
}

// EntityResolver finds an existing record representing "the same real-world
// entity" before any create is attempted. Pure reads; never mutates state.
type EntityResolver interface {
	FindCompany(ctx context.Context, name string) (*Match, error)
	FindContact(ctx context.Context, firstName, lastName, email string) (*Match, error)
}

// ResolverConfig tunes the resolver. Zero values fall back to defaults.
type ResolverConfig struct {
	// Threshold is the strict lower bound on the 0-100 similarity ratio.
	Threshold int
	// CompanyNameField is the API name of the Company name field.
	CompanyNameField string
	// ContactEmailField overrides schema-derived email field detection.
	// Tenants differ between Email and EmailAddress; when empty the live
	// Contact schema decides.
	ContactEmailField string
	// Scorer computes the similarity ratio. Defaults to a diacritic-folded,
	// case-insensitive fuzzy ratio.
	Scorer func(a, b string) int
}

type entityResolver struct {
	schema    SchemaCatalog
	data      DataStore
	threshold int
	nameField string
	scorer    func(a, b string) int
	logger    *zap.Logger

	emailField string // configured or lazily resolved from schema
}

// NewEntityResolver creates a resolver over the schema catalog and data store.
func NewEntityResolver(schema SchemaCatalog, data DataStore, cfg ResolverConfig, logger *zap.Logger) EntityResolver {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultMatchThreshold
	}
	if cfg.CompanyNameField == "" {
		cfg.CompanyNameField = defaultCompanyNameField
	}
	if cfg.Scorer == nil {
		cfg.Scorer = defaultScorer
	}
	return &entityResolver{
		schema:     schema,
		data:       data,
		threshold:  cfg.Threshold,
		nameField:  cfg.CompanyNameField,
		scorer:     cfg.Scorer,
		emailField: cfg.ContactEmailField,
		logger:     logger.Named("resolver"),
	}
}

var _ EntityResolver = (*entityResolver)(nil)

// defaultScorer is a 0-100 fuzzy ratio over normalized names.
func defaultScorer(a, b string) int {
	return fuzzy.Ratio(normalizeName(a), normalizeName(b))
}

// FindCompany returns the best existing company whose name scores strictly
// above the threshold against the query name, or nil when none does.
//
// Server-side exact matching is unreliable against inconsistent CRM name
// formatting (legal suffixes, abbreviations, diacritics), so a deliberately
// coarse three-character prefix filter is narrowed client-side by the
// similarity threshold.
func (r *entityResolver) FindCompany(ctx context.Context, name string) (*Match, error) {
	et, err := r.schema.FindEntryType(ctx, companyEntryType)
	if err != nil {
		return nil, fmt.Errorf("resolve company entry type: %w", err)
	}

	set, err := r.data.Rows(ctx, et.ID, dealcloud.Contains(r.nameField, namePrefix(name)), nil)
	if err != nil {
		return nil, fmt.Errorf("query company candidates: %w", err)
	}

	best := r.bestMatch(set.Rows, name, func(row dealcloud.Row) string {
		return row.Text(r.nameField)
	})
	if best != nil {
		r.logger.Debug("Matched existing company",
			zap.String("query", name),
			zap.Int("score", best.Score))
	}
	return best, nil
}

// FindContact returns an existing contact. A supplied email is authoritative:
// the first row of an exact-email query is returned verbatim and the fuzzy
// name path is never taken. Without an email, first and last name are
// substring-filtered server-side and the concatenated full name is fuzzy
// scored.
func (r *entityResolver) FindContact(ctx context.Context, firstName, lastName, email string) (*Match, error) {
	et, err := r.schema.FindEntryType(ctx, contactEntryType)
	if err != nil {
		return nil, fmt.Errorf("resolve contact entry type: %w", err)
	}

	if email != "" {
		field, err := r.contactEmailField(ctx, et.ID)
		if err != nil {
			return nil, err
		}
		set, err := r.data.Rows(ctx, et.ID, dealcloud.Eq(field, email), nil)
		if err != nil {
			return nil, fmt.Errorf("query contact by email: %w", err)
		}
		if len(set.Rows) == 0 {
			return nil, nil
		}
		return &Match{Row: set.Rows[0], Score: 100}, nil
	}

	q := dealcloud.And(
		dealcloud.Contains(firstNameField, firstName),
		dealcloud.Contains(lastNameField, lastName),
	)
	set, err := r.data.Rows(ctx, et.ID, q, nil)
	if err != nil {
		return nil, fmt.Errorf("query contact candidates: %w", err)
	}

	fullName := firstName + " " + lastName
	best := r.bestMatch(set.Rows, fullName, func(row dealcloud.Row) string {
		return row.Text(firstNameField) + " " + row.Text(lastNameField)
	})
	if best != nil {
		r.logger.Debug("Matched existing contact",
			zap.String("query", fullName),
			zap.Int("score", best.Score))
	}
	return best, nil
}

// bestMatch keeps candidates scoring strictly above the threshold and
// returns the first maximum encountered, or nil when the set is empty.
func (r *entityResolver) bestMatch(rows []dealcloud.Row, query string, candidateName func(dealcloud.Row) string) *Match {
	var best *Match
	for _, row := range rows {
		name := candidateName(row)
		if name == "" || name == " " {
			continue
		}
		score := r.scorer(query, name)
		if score <= r.threshold {
			continue
		}
		if best == nil || score > best.Score {
			best = &Match{Row: row, Score: score}
		}
	}
	return best
}

// contactEmailField returns the configured email field name, or derives it
// from the live Contact schema on first use.
func (r *entityResolver) contactEmailField(ctx context.Context, contactTypeID int) (string, error) {
	if r.emailField != "" {
		return r.emailField, nil
	}

	fields, err := r.schema.EntryTypeFields(ctx, contactTypeID)
	if err != nil {
		return "", fmt.Errorf("derive contact email field: %w", err)
	}

	switch {
	case dealcloud.FindField(fields, primaryEmailField) != nil:
		r.emailField = primaryEmailField
	case dealcloud.FindField(fields, fallbackEmailField) != nil:
		r.emailField = fallbackEmailField
	default:
		r.logger.Warn("Contact schema has no known email field, defaulting",
			zap.String("field", primaryEmailField))
		r.emailField = primaryEmailField
	}

	return r.emailField, nil
}
