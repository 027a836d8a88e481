package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
	"github.com/meridian-vc/crm-engine/pkg/models"
)

const jobTitleEntryType = "Job Title"

// RecordService orchestrates resolve-then-create for companies and contacts.
// Callers receive a record (nil unless Existing/Created), an Outcome, and an
// error that is non-nil only when the outcome is Error or CompanyFailed with
// an underlying fault.
type RecordService interface {
	CreateCompany(ctx context.Context, params models.CompanyCreateParams) (dealcloud.Row, Outcome, error)
	CreateContact(ctx context.Context, params models.ContactCreateParams) (dealcloud.Row, Outcome, error)
}

type recordService struct {
	schema   SchemaCatalog
	data     DataStore
	resolver EntityResolver
	mapper   FieldValueMapper
	logger   *zap.Logger
}

// NewRecordService creates the record synthesizer.
func NewRecordService(
	schema SchemaCatalog,
	data DataStore,
	resolver EntityResolver,
	mapper FieldValueMapper,
	logger *zap.Logger,
) RecordService {
	return &recordService{
		schema:   schema,
		data:     data,
		resolver: resolver,
		mapper:   mapper,
		logger:   logger.Named("record-service"),
	}
}

var _ RecordService = (*recordService)(nil)

// CreateCompany resolves the company by name first and only creates when no
// existing record scores above the match threshold.
func (s *recordService) CreateCompany(ctx context.Context, params models.CompanyCreateParams) (dealcloud.Row, Outcome, error) {
	match, err := s.resolver.FindCompany(ctx, params.Name)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("resolve company %q: %w", params.Name, err)
	}
	if match != nil {
		s.logger.Info("Company already exists",
			zap.String("name", params.Name),
			zap.Int("score", match.Score))
		return match.Row, OutcomeExisting, nil
	}

	et, err := s.schema.FindEntryType(ctx, companyEntryType)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("resolve company entry type: %w", err)
	}

	return s.create(ctx, et, companyAssignments(params))
}

// CreateContact resolves (and when needed transitively creates) the
// contact's company, then runs the contact through the same
// resolve-assemble-submit-verify sequence.
func (s *recordService) CreateContact(ctx context.Context, params models.ContactCreateParams) (dealcloud.Row, Outcome, error) {
	companyID := params.Company.ID
	if companyID == 0 && params.Company.Name != "" {
		companyRow, outcome, err := s.CreateCompany(ctx, models.CompanyCreateParams{
			Name:        params.Company.Name,
			Type:        params.CompanyType,
			Website:     params.CompanyWebsite,
			OwnerEmails: params.OwnerEmails,
		})
		if outcome != OutcomeExisting && outcome != OutcomeCreated {
			s.logger.Warn("Company step did not succeed, contact not attempted",
				zap.String("company", params.Company.Name),
				zap.String("outcome", string(outcome)))
			if err != nil {
				err = fmt.Errorf("company step for %q: %w", params.Company.Name, err)
			}
			return nil, OutcomeCompanyFailed, err
		}
		companyID = companyRow.EntryID()
		if companyID <= 0 {
			return nil, OutcomeCompanyFailed, fmt.Errorf("company %q resolved without an entry id", params.Company.Name)
		}
	}

	match, err := s.resolver.FindContact(ctx, params.FirstName, params.LastName, params.Email)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("resolve contact %s %s: %w", params.FirstName, params.LastName, err)
	}
	if match != nil {
		s.logger.Info("Contact already exists",
			zap.String("first_name", params.FirstName),
			zap.String("last_name", params.LastName),
			zap.Int("score", match.Score))
		return match.Row, OutcomeExisting, nil
	}

	et, err := s.schema.FindEntryType(ctx, contactEntryType)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("resolve contact entry type: %w", err)
	}

	var titleID int
	if params.JobTitle != "" {
		titleID = s.findOrCreateJobTitle(ctx, params.JobTitle)
	}

	return s.create(ctx, et, contactAssignments(params, companyID, titleID))
}

// create runs the assemble-guard-submit-verify-readback sequence for one
// entry type.
func (s *recordService) create(ctx context.Context, et *dealcloud.EntryType, assigns []assignment) (dealcloud.Row, Outcome, error) {
	fields, err := s.schema.EntryTypeFields(ctx, et.ID)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("fetch %s fields: %w", et.Name, err)
	}

	requests := make([]dealcloud.StoreRequest, 0, len(assigns))
	for _, a := range assigns {
		field := dealcloud.FindField(fields, a.apiName)
		if field == nil {
			s.logger.Debug("Field absent from schema, skipping",
				zap.String("entry_type", et.Name),
				zap.String("field", a.apiName))
			continue
		}
		req, err := s.mapper.Map(ctx, field, a.value, dealcloud.NewEntrySentinel)
		if err != nil {
			s.logger.Warn("Could not map field, skipping",
				zap.String("entry_type", et.Name),
				zap.String("field", a.apiName),
				zap.Error(err))
			continue
		}
		if req != nil {
			requests = append(requests, *req)
		}
	}

	if len(requests) == 0 {
		s.logger.Warn("No writable fields assembled, refusing empty create",
			zap.String("entry_type", et.Name))
		return nil, OutcomeFailed, nil
	}

	results, err := s.data.SubmitStoreRequests(ctx, et.ID, requests)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("submit %s create: %w", et.Name, err)
	}

	rowID := 0
	for _, result := range results {
		if !result.Failed() {
			rowID = result.RowID
			break
		}
	}
	if rowID <= 0 {
		s.logger.Warn("Create produced no usable row id", zap.String("entry_type", et.Name))
		return nil, OutcomeFailed, nil
	}

	set, err := s.data.Rows(ctx, et.ID, dealcloud.Eq("EntryId", rowID), nil)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("read back created %s %d: %w", et.Name, rowID, err)
	}
	if len(set.Rows) == 0 {
		// The write landed server-side but the record is not visible yet (or
		// the id did not round-trip); tolerated as a failed create, not a fault.
		s.logger.Warn("Created record not visible on read-back",
			zap.String("entry_type", et.Name),
			zap.Int("row_id", rowID))
		return nil, OutcomeFailed, nil
	}

	s.logger.Info("Created record",
		zap.String("entry_type", et.Name),
		zap.Int("row_id", rowID))
	return set.Rows[0], OutcomeCreated, nil
}

// findOrCreateJobTitle returns the id of the job-title record, creating it
// when missing. Best-effort: failures log and yield 0 so the contact create
// proceeds without a title.
func (s *recordService) findOrCreateJobTitle(ctx context.Context, title string) int {
	et, err := s.schema.FindEntryType(ctx, jobTitleEntryType)
	if err != nil {
		s.logger.Warn("Job title entry type unavailable", zap.Error(err))
		return 0
	}

	set, err := s.data.Rows(ctx, et.ID, dealcloud.Eq("Name", title), nil)
	if err != nil {
		s.logger.Warn("Job title lookup failed", zap.String("title", title), zap.Error(err))
		return 0
	}
	if len(set.Rows) > 0 {
		return set.Rows[0].EntryID()
	}

	created, err := s.data.CreateRows(ctx, et.ID, []map[string]any{{
		"EntryId": dealcloud.NewEntrySentinel,
		"Name":    title,
	}})
	if err != nil || len(created) == 0 {
		s.logger.Warn("Job title create failed", zap.String("title", title), zap.Error(err))
		return 0
	}
	return created[0].EntryID()
}

// assignment pairs a schema field API name with the raw value destined for it.
type assignment struct {
	apiName string
	value   any
}

type assignments []assignment

func (a *assignments) add(apiName string, value any) {
	*a = append(*a, assignment{apiName: apiName, value: value})
}

func (a *assignments) addString(apiName, value string) {
	if value != "" {
		a.add(apiName, value)
	}
}

func (a *assignments) addRef(apiName string, ref models.Ref) {
	if !ref.IsZero() {
		a.add(apiName, ref)
	}
}

func (a *assignments) addRefs(apiName string, refs []models.Ref) {
	if len(refs) > 0 {
		a.add(apiName, refs)
	}
}

// companyAssignments lays out a company create in schema field order.
// The tenant-required Database flag is attempted on every create and skips
// silently on tenants whose schema lacks it.
func companyAssignments(p models.CompanyCreateParams) []assignment {
	var a assignments

	a.addString("CompanyName", p.Name)
	a.addString("Type", string(p.Type))
	a.add("Database", "No")

	a.addString("BusinessDescription", p.BusinessDescription)
	a.addString("Website", p.Website)
	a.addString("BoxFolder", p.BoxFolder)
	a.addString("ConfluencePage", p.ConfluencePage)
	a.addString("DashboardNotes", p.DashboardNotes)
	a.addString("LegacyCompanyID", p.LegacyCompanyID)
	a.addString("PitchBookID", p.PitchbookID)
	if p.PreferredPricing != nil {
		a.add("PreferredPricing", *p.PreferredPricing)
	}

	a.addRef("Parent", p.Parent)
	a.addRefs("BoardMembers", p.BoardMembers)
	a.addRefs("CoInvestors", p.CoInvestors)
	a.addRefs("PrimaryContacts", p.PrimaryContacts)
	a.addRef("Sector", p.Sector)
	a.addRef("SubSector", p.SubSector)

	a.addString("SubType", string(p.SubType))
	a.addString("Category", string(p.Category))
	if p.PreferredVendor {
		a.add("IsPreferredVendor", "Yes")
	}
	if len(p.SecondaryTypes) > 0 {
		a.add("SecondaryTypes", p.SecondaryTypes)
	}

	if len(p.OwnerEmails) > 0 {
		a.add("Owners", p.OwnerEmails)
	}

	return a
}

// otherEmailFields are the tenant's overflow email slots, filled in order.
var otherEmailFields = [...]string{"OtherEmail", "OtherEmail2", "OtherEmail3", "OtherEmail4"}

// contactAssignments lays out a contact create. companyID and titleID are
// pre-resolved references; zero means absent.
func contactAssignments(p models.ContactCreateParams, companyID, titleID int) []assignment {
	var a assignments

	a.addString("FirstName", p.FirstName)
	a.addString("LastName", p.LastName)
	a.addString("Email", p.Email)
	if titleID > 0 {
		a.add("Title", models.RefID(titleID))
	}
	a.addString("Department", p.Department)
	a.addString("LinkedInURL", p.LinkedInURL)
	if p.Notes != "" {
		a.add("Notes", "<p>"+p.Notes+"</p>")
	}
	a.addString("Salutation", string(p.Salutation))
	a.addString("ContactType", string(p.ContactType))

	for i, email := range p.OtherEmails {
		if i >= len(otherEmailFields) {
			break
		}
		a.addString(otherEmailFields[i], email)
	}
	a.addString("AssistantEmail", p.AssistantEmail)
	a.addString("AssistantName", p.AssistantName)
	a.addString("Spouse", p.Spouse)

	a.addString("Address", p.Address)
	a.addString("City", p.City)
	a.addString("State", p.State)
	a.addString("GlobalPostalCode", p.PostalCode)
	a.addRef("Country", p.Country)

	if companyID > 0 {
		a.add("Company", models.RefID(companyID))
	}
	a.addRefs("BoardMemberships", p.BoardMemberships)
	// AdditionalAffliatedCompanies is the tenant's actual API name, typo
	// included.
	a.addRefs("AdditionalAffliatedCompanies", p.AffiliatedCompanies)
	a.addRefs("AffiliatedInvestor", p.AffiliatedInvestors)
	a.addRefs("PreviousEmployment", p.PreviousEmployment)
	a.addRefs("ConnectedTo", p.ConnectedTo)
	a.addRefs("ConferencesAttended", p.ConferencesAttended)
	a.addRefs("Themes", p.Themes)
	a.addRef("Sector", p.Sector)
	a.addRef("SubSector", p.SubSector)

	a.addString("DivisionsAffiliated", string(p.Division))
	a.addString("TNProspect", string(p.PeopleFlow))
	a.addString("ContactFrequency", p.ContactFrequency)

	a.add("AdditionalEmails", p.AdditionalEmails)
	a.add("NetworkExpert", p.NetworkExpert)
	a.add("TNCandidate", p.TalentProspect)
	a.add("GloballyUnsubscribed", p.GloballyUnsubscribed)
	if p.PrimaryContact {
		a.add("PrimaryContact", "Yes")
	}

	if len(p.OwnerEmails) > 0 {
		a.add("Owners", p.OwnerEmails)
	}

	a.addString("SourceFile", p.SourceFile)
	a.addString("LegacyContactID", p.LegacyContactID)
	a.addString("DCImport", p.DCImportID)
	a.addString("PostGoLiveSourceFile", p.PostGoLiveSourceFile)
	a.addString("DashboardNotes", p.DashboardNotes)
	a.add("Database", "No")

	return a
}
