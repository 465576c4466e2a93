package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/invoicepro/internal/api"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage the company profile shown on invoices",
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := appInstance.CompanyRepo.Get(context.Background())
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("No company profile yet. Set one with 'invoicepro company set'.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load company profile: %w", err)
		}

		fmt.Printf("Business: %s\n", profile.BusinessName)
		if profile.Address != "" {
			fmt.Printf("Address:  %s\n", profile.Address)
		}
		if profile.Phone != "" {
			fmt.Printf("Phone:    %s\n", profile.Phone)
		}
		if profile.Logo != "" {
			fmt.Printf("Logo:     %s\n", profile.Logo)
		}
		return nil
	},
}

var companySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Start from the stored profile so unset flags keep their values
		profile, err := appInstance.CompanyRepo.Get(ctx)
		if errors.Is(err, api.ErrNotFound) {
			profile = &domain.CompanyProfile{}
		} else if err != nil {
			return fmt.Errorf("failed to load company profile: %w", err)
		}

		if cmd.Flags().Changed("name") {
			profile.BusinessName, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("address") {
			profile.Address, _ = cmd.Flags().GetString("address")
		}
		if cmd.Flags().Changed("phone") {
			profile.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("logo") {
			profile.Logo, _ = cmd.Flags().GetString("logo")
		}

		saved, err := appInstance.CompanyRepo.Save(ctx, profile)
		if err != nil {
			return fmt.Errorf("failed to save company profile: %w", err)
		}

		fmt.Printf("✓ Company profile saved: %s\n", saved.BusinessName)
		return nil
	},
}

func init() {
	companyCmd.AddCommand(companyShowCmd)
	companyCmd.AddCommand(companySetCmd)

	companySetCmd.Flags().String("name", "", "Business name")
	companySetCmd.Flags().String("address", "", "Postal address")
	companySetCmd.Flags().String("phone", "", "Phone number")
	companySetCmd.Flags().String("logo", "", "Logo URL")
}
