package models

// CompanyType classifies a company record.
type CompanyType string

const (
	CompanyTypeLimitedPartner       CompanyType = "Limited Partner"
	CompanyTypePortfolioProspect    CompanyType = "Portfolio Prospect"
	CompanyTypePortfolioCompany     CompanyType = "Portfolio Company"
	CompanyTypeHedgeFund            CompanyType = "Hedge Fund"
	CompanyTypeVentureCapital       CompanyType = "Venture Capital"
	CompanyTypeServiceProvider      CompanyType = "Service Provider / Business Partner"
	CompanyTypeAcademicInstitution  CompanyType = "Academic Institution"
	CompanyTypeStrategic            CompanyType = "Strategic"
	CompanyTypeFinancialInstitution CompanyType = "Financial Institution"
	CompanyTypeLawFirm              CompanyType = "Law Firm"
	CompanyTypeOther                CompanyType = "Other"
)

// CompanySubType refines CompanyType for LPs and service providers.
type CompanySubType string

const (
	CompanySubTypeAssetManager       CompanySubType = "Asset Manager"
	CompanySubTypeBank               CompanySubType = "Bank"
	CompanySubTypeInvestmentConsult  CompanySubType = "Investment Consultant"
	CompanySubTypeEndowment          CompanySubType = "Endowment & Foundation"
	CompanySubTypeMultiFamilyOffice  CompanySubType = "Family Office - Multi"
	CompanySubTypeSingleFamilyOffice CompanySubType = "Family Office - Single"
	CompanySubTypeFundManager        CompanySubType = "Fund Manager"
	CompanySubTypeFundOfFund         CompanySubType = "Fund of Fund"
	CompanySubTypeGovernmentAgency   CompanySubType = "Government Agency"
	CompanySubTypeGrowthEquity       CompanySubType = "Growth Equity"
	CompanySubTypeHealthcareSystem   CompanySubType = "Healthcare System"
	CompanySubTypeHNWI               CompanySubType = "High-Net-Worth Individual"
	CompanySubTypeInsurance          CompanySubType = "Insurance Company"
	CompanySubTypeInvestmentBankLP   CompanySubType = "Investment Bank (LP)"
	CompanySubTypePEInvestor         CompanySubType = "Private Equity Firm (Investor)"
	CompanySubTypePrivatePension     CompanySubType = "Private Sector Pension Fund"
	CompanySubTypePublicPension      CompanySubType = "Public Pension Fund"
	CompanySubTypeSovereignWealth    CompanySubType = "Sovereign Wealth Fund"
	CompanySubTypeWealthManager      CompanySubType = "Wealth Manager"
	CompanySubTypeAccelerator        CompanySubType = "Accelerator"
	CompanySubTypeAccounting         CompanySubType = "Accounting Firm"
	CompanySubTypeBankService        CompanySubType = "Bank (Service Provider)"
	CompanySubTypeBusinessBroker     CompanySubType = "Business Broker"
	CompanySubTypeConsulting         CompanySubType = "Consulting Firm"
	CompanySubTypeExecSearch         CompanySubType = "Executive Search Firm"
	CompanySubTypeInvestmentBank     CompanySubType = "Investment Bank"
	CompanySubTypePEService          CompanySubType = "Private Equity Firm (Service Provider)"
	CompanySubTypeVendor             CompanySubType = "Vendor"
)

// CompanyCategory tags a company's business area.
type CompanyCategory string

const (
	CompanyCategoryHedgeFund     CompanyCategory = "Hedge Fund"
	CompanyCategoryPrivateEquity CompanyCategory = "Private Equity"
	CompanyCategorySecondary     CompanyCategory = "Secondary"
	CompanyCategoryHybrid        CompanyCategory = "Hybrid"
	CompanyCategoryMediaPR       CompanyCategory = "Media / Public Relations"
	CompanyCategorySoftware      CompanyCategory = "Software"
	CompanyCategoryAnalytics     CompanyCategory = "Analytics"
	CompanyCategoryData          CompanyCategory = "Data"
	CompanyCategoryFacilities    CompanyCategory = "Facilities"
	CompanyCategoryITSecurity    CompanyCategory = "IT & Security"
	CompanyCategoryTravel        CompanyCategory = "Travel / Hotel / Restaurants"
	CompanyCategoryUtilities     CompanyCategory = "Utilities"
)

// CompanyCreateParams holds all user-intent fields for a company creation
// request. Name is required; everything else is optional and skipped when
// zero.
type CompanyCreateParams struct {
	// Required
	Name string
	Type CompanyType

	// Descriptive
	BusinessDescription string
	Website             string
	BoxFolder           string
	ConfluencePage      string
	DashboardNotes      string
	LegacyCompanyID     string
	PitchbookID         string
	PreferredPricing    *float64

	// References (id or name; names resolve transitively)
	Parent          Ref
	BoardMembers    []Ref
	CoInvestors     []Ref
	PrimaryContacts []Ref
	Sector          Ref
	SubSector       Ref

	// Choices
	SubType         CompanySubType
	Category        CompanyCategory
	PreferredVendor bool
	SecondaryTypes  []CompanyType

	// Owners, as directory email addresses
	OwnerEmails []string
}
