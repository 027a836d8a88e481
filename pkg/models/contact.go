package models

// Salutation is the honorific choice set for contacts.
type Salutation string

const (
	SalutationMr   Salutation = "Mr."
	SalutationMrs  Salutation = "Mrs."
	SalutationMs   Salutation = "Ms."
	SalutationDr   Salutation = "Dr."
	SalutationProf Salutation = "Prof."
)

// ContactType classifies a contact record.
type ContactType string

const (
	ContactTypeLimitedPartner         ContactType = "Limited Partner"
	ContactTypeVCProfessional         ContactType = "Venture Capital Professional"
	ContactTypeHFProfessional         ContactType = "Hedge Fund Professional"
	ContactTypeInvestmentBanker       ContactType = "Investment Banker"
	ContactTypeServiceProvider        ContactType = "Service Provider"
	ContactTypeConsultant             ContactType = "Consultant / Advisor / Expert"
	ContactTypeHealthcareProfessional ContactType = "Healthcare Professional"
	ContactTypeExecutive              ContactType = "Executive / Entrepreneur"
	ContactTypeAssistant              ContactType = "Assistant"
	ContactTypeAcademic               ContactType = "Academic"
	ContactTypeStudent                ContactType = "Student / Intern"
	ContactTypeFinanceProfessional    ContactType = "Finance Professional"
	ContactTypeSoftwareEngineer       ContactType = "Software Engineer"
	ContactTypeDataScientist          ContactType = "Data Scientist"
	ContactTypeOther                  ContactType = "Other"
	ContactTypeNonCSuite              ContactType = "Professionals (Non C-Suite)"
)

// Division is the firm-division choice set.
type Division string

const (
	DivisionVentures   Division = "Santé Ventures"
	DivisionCapital    Division = "Santé Capital"
	DivisionEnterprise Division = "Enterprise"
)

// PeopleFlow tracks how a contact entered the talent/network pipeline.
type PeopleFlow string

const (
	PeopleFlowTalentFirm   PeopleFlow = "Talent - Firm"
	PeopleFlowTalentPortCo PeopleFlow = "Talent - PortCo"
	PeopleFlowTalentEIR    PeopleFlow = "Talent - EIR"
	PeopleFlowNetwork      PeopleFlow = "Network"
	PeopleFlowOther        PeopleFlow = "T&N - Other"
)

// ContactCreateParams holds all user-intent fields for a contact creation
// request. FirstName and LastName are required; everything else is optional
// and skipped when zero.
type ContactCreateParams struct {
	// Required
	FirstName string
	LastName  string

	// Basic information
	Email       string
	JobTitle    string
	Department  string
	LinkedInURL string
	Notes       string
	Salutation  Salutation
	ContactType ContactType

	// Additional contact info. OtherEmails maps onto the tenant's
	// OtherEmail..OtherEmail4 fields in order; extras are dropped.
	OtherEmails    []string
	AssistantEmail string
	AssistantName  string
	Spouse         string

	// Physical address
	Address    string
	City       string
	State      string
	PostalCode string
	Country    Ref

	// Company the contact belongs to. A name (rather than an id) triggers a
	// transitive find-or-create of the company before the contact is built;
	// CompanyType, CompanyWebsite, and OwnerEmails seed that create.
	Company        Ref
	CompanyType    CompanyType
	CompanyWebsite string

	// Other references
	BoardMemberships    []Ref
	AffiliatedCompanies []Ref
	AffiliatedInvestors []Ref
	PreviousEmployment  []Ref
	ConnectedTo         []Ref
	ConferencesAttended []Ref
	Themes              []Ref
	Sector              Ref
	SubSector           Ref

	// Choices
	Division         Division
	PeopleFlow       PeopleFlow
	ContactFrequency string // days between touches: "30", "60", "90", "180"

	// Flags
	AdditionalEmails     bool
	NetworkExpert        bool
	TalentProspect       bool
	GloballyUnsubscribed bool
	PrimaryContact       bool

	// Owners, as directory email addresses
	OwnerEmails []string

	// Administrative
	SourceFile           string
	LegacyContactID      string
	DCImportID           string
	PostGoLiveSourceFile string
	DashboardNotes       string
}
