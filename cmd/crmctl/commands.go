package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
	"github.com/meridian-vc/crm-engine/pkg/models"
	"github.com/meridian-vc/crm-engine/pkg/retry"
	"github.com/meridian-vc/crm-engine/pkg/services"
)

var (
	companyType    string
	companyDesc    string
	companyWebsite string
	ownerEmails    []string

	contactEmail    string
	contactJobTitle string
	contactLinkedIn string
	contactNotes    string
	contactType     string
	contactCompany  string
	contactCountry  string
	contactPrimary  bool
	noRetry         bool
)

// printResult writes the outcome and (when present) the canonical record as
// JSON to stdout.
func printResult(row dealcloud.Row, outcome services.Outcome) error {
	out := map[string]any{"outcome": outcome}
	if row != nil {
		out["record"] = row
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func retryConfig() *retry.Config {
	if noRetry {
		return &retry.Config{MaxRetries: 0}
	}
	return retry.DefaultConfig()
}

var createCompanyCmd = &cobra.Command{
	Use:   "create-company <name>",
	Short: "Create a company, or return the existing match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := models.CompanyCreateParams{
			Name:                args[0],
			Type:                models.CompanyType(companyType),
			BusinessDescription: companyDesc,
			Website:             companyWebsite,
			OwnerEmails:         ownerEmails,
		}

		type createResult struct {
			row     dealcloud.Row
			outcome services.Outcome
		}
		result, err := retry.DoWithResult(cmd.Context(), retryConfig(), func() (createResult, error) {
			row, outcome, err := recordService.CreateCompany(cmd.Context(), params)
			return createResult{row: row, outcome: outcome}, err
		})
		if err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		return printResult(result.row, result.outcome)
	},
}

var createContactCmd = &cobra.Command{
	Use:   "create-contact <first-name> <last-name>",
	Short: "Create a contact, resolving or creating its company first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := models.ContactCreateParams{
			FirstName:      args[0],
			LastName:       args[1],
			Email:          contactEmail,
			JobTitle:       contactJobTitle,
			LinkedInURL:    contactLinkedIn,
			Notes:          contactNotes,
			ContactType:    models.ContactType(contactType),
			PrimaryContact: contactPrimary,
			OwnerEmails:    ownerEmails,
		}
		if contactCompany != "" {
			params.Company = models.RefName(contactCompany)
			params.CompanyType = models.CompanyType(companyType)
			params.CompanyWebsite = companyWebsite
		}
		if contactCountry != "" {
			params.Country = models.RefName(contactCountry)
		}

		type createResult struct {
			row     dealcloud.Row
			outcome services.Outcome
		}
		result, err := retry.DoWithResult(cmd.Context(), retryConfig(), func() (createResult, error) {
			row, outcome, err := recordService.CreateContact(cmd.Context(), params)
			return createResult{row: row, outcome: outcome}, err
		})
		if err != nil {
			return fmt.Errorf("create contact: %w", err)
		}
		return printResult(result.row, result.outcome)
	},
}

var findCompanyCmd = &cobra.Command{
	Use:   "find-company <name>",
	Short: "Resolve a company by fuzzy name match without creating anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		match, err := resolver.FindCompany(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("find company: %w", err)
		}
		if match == nil {
			fmt.Println("no match")
			return nil
		}

		out := map[string]any{"score": match.Score, "record": match.Row}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	createCompanyCmd.Flags().StringVar(&companyType, "type", "", "company type choice value")
	createCompanyCmd.Flags().StringVar(&companyDesc, "description", "", "business description")
	createCompanyCmd.Flags().StringVar(&companyWebsite, "website", "", "company website")
	createCompanyCmd.Flags().StringSliceVar(&ownerEmails, "owner", nil, "owner email (repeatable)")
	createCompanyCmd.Flags().BoolVar(&noRetry, "no-retry", false, "fail on the first transport error")

	createContactCmd.Flags().StringVar(&contactEmail, "email", "", "contact email")
	createContactCmd.Flags().StringVar(&contactJobTitle, "job-title", "", "job title (found or created)")
	createContactCmd.Flags().StringVar(&contactLinkedIn, "linkedin", "", "LinkedIn URL")
	createContactCmd.Flags().StringVar(&contactNotes, "notes", "", "notes")
	createContactCmd.Flags().StringVar(&contactType, "type", "", "contact type choice value")
	createContactCmd.Flags().StringVar(&contactCompany, "company", "", "company name (resolved or created first)")
	createContactCmd.Flags().StringVar(&companyType, "company-type", "", "company type for a transitively created company")
	createContactCmd.Flags().StringVar(&companyWebsite, "company-website", "", "website for a transitively created company")
	createContactCmd.Flags().StringVar(&contactCountry, "country", "", "country name")
	createContactCmd.Flags().BoolVar(&contactPrimary, "primary", false, "mark as primary contact")
	createContactCmd.Flags().StringSliceVar(&ownerEmails, "owner", nil, "owner email (repeatable)")
	createContactCmd.Flags().BoolVar(&noRetry, "no-retry", false, "fail on the first transport error")
}
