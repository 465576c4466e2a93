package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/service"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `List, inspect, and manage invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoices, err := appInstance.InvoiceService.ListInvoices(ctx)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		filters := service.InvoiceFilters{Status: service.StatusFilterAll}
		if cmd.Flags().Changed("status") {
			filters.Status, _ = cmd.Flags().GetString("status")
		}
		filters.Search, _ = cmd.Flags().GetString("search")
		invoices = service.ApplyFilters(invoices, filters)

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		// Print table header
		fmt.Printf("%-16s %-22s %-12s %-12s %s\n", "Number", "Client", "Due", "Total", "Status")
		fmt.Println("---------------------------------------------------------------------------")

		for _, invoice := range invoices {
			due := "-"
			if !invoice.DueDate.IsZero() {
				due = invoice.DueDate.Format("2006-01-02")
			}
			fmt.Printf("%-16s %-22s %-12s $%-11.2f %s\n",
				invoice.InvoiceNumber,
				truncate(invoice.ClientName(), 22),
				due,
				invoice.Total,
				invoice.Status,
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [number_or_id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := findInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Println(strings.Repeat("=", 72))
		fmt.Printf("Invoice: %s\n", invoice.InvoiceNumber)
		fmt.Println(strings.Repeat("=", 72))
		fmt.Printf("Client: %s\n", invoice.ClientName())
		if !invoice.InvoiceDate.IsZero() {
			fmt.Printf("Date:   %s\n", invoice.InvoiceDate.Format("2006-01-02"))
		}
		if !invoice.DueDate.IsZero() {
			fmt.Printf("Due:    %s\n", invoice.DueDate.Format("2006-01-02"))
		}
		fmt.Printf("Status: %s\n", invoice.Status)
		if invoice.Notes != "" {
			fmt.Printf("Notes:  %s\n", invoice.Notes)
		}
		fmt.Println()

		if len(invoice.Items) > 0 {
			fmt.Println("Line Items:")
			fmt.Println(strings.Repeat("-", 72))
			fmt.Printf("%-40s %8s %10s %10s\n", "Item", "Qty", "Price", "Amount")
			fmt.Println(strings.Repeat("-", 72))

			for _, item := range invoice.Items {
				fmt.Printf("%-40s %8d $%9.2f $%9.2f\n",
					truncate(item.Name, 40),
					item.Quantity,
					item.Price,
					item.Amount(),
				)
			}
			fmt.Println(strings.Repeat("-", 72))
		}

		fmt.Printf("\n")
		fmt.Printf("Subtotal: $%.2f\n", domain.Subtotal(invoice.Items))
		fmt.Printf("Tax:      $%.2f\n", invoice.Tax)
		fmt.Printf("Discount: $%.2f\n", invoice.Discount)
		fmt.Printf("Total:    $%.2f\n", invoice.Total)
		fmt.Println(strings.Repeat("=", 72))

		return nil
	},
}

var invoicesStatusCmd = &cobra.Command{
	Use:   "status [number_or_id] [pending|paid|overdue]",
	Short: "Change an invoice's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := findInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		// Wire statuses are title-cased; accept any casing here
		raw := strings.ToLower(args[1])
		if raw == "" {
			return fmt.Errorf("status is required")
		}
		status, err := domain.ParseStatus(strings.ToUpper(raw[:1]) + raw[1:])
		if err != nil {
			return err
		}

		updated, err := appInstance.InvoiceService.RequestStatusChange(ctx, invoice, status)
		if err != nil {
			return fmt.Errorf("failed to change status: %w", err)
		}

		fmt.Printf("✓ Invoice %s marked %s\n", updated.InvoiceNumber, updated.Status)
		return nil
	},
}

var invoicesPDFCmd = &cobra.Command{
	Use:   "pdf [number_or_id]",
	Short: "Download an invoice as PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := findInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		path, err := appInstance.InvoiceService.ExportPDF(ctx, invoice)
		if err != nil {
			return fmt.Errorf("failed to download PDF: %w", err)
		}

		fmt.Printf("✓ PDF saved: %s\n", path)
		return nil
	},
}

var invoicesRemoveCmd = &cobra.Command{
	Use:   "rm [number_or_id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := findInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			answer, err := promptLine(fmt.Sprintf("Delete invoice %s? This cannot be undone. [y/N]: ", invoice.InvoiceNumber))
			if err != nil {
				return err
			}
			if answer != "y" && answer != "Y" {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := appInstance.InvoiceService.DeleteInvoice(ctx, invoice.ID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		fmt.Printf("✓ Invoice deleted: %s\n", invoice.InvoiceNumber)
		return nil
	},
}

// findInvoice resolves an invoice number or backend id against the list
func findInvoice(ctx context.Context, numberOrID string) (*domain.Invoice, error) {
	invoices, err := appInstance.InvoiceService.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	for _, inv := range invoices {
		if inv.ID == numberOrID || inv.InvoiceNumber == numberOrID {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("invoice not found: %s", numberOrID)
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesStatusCmd)
	invoicesCmd.AddCommand(invoicesPDFCmd)
	invoicesCmd.AddCommand(invoicesRemoveCmd)

	// List flags
	invoicesListCmd.Flags().String("status", "", "Filter by status (Pending, Paid, Overdue)")
	invoicesListCmd.Flags().String("search", "", "Filter by invoice number or client name substring")

	invoicesRemoveCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
