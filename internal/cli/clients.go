package cli

import (
	"context"
	"fmt"

	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/service"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `Create, list, update, and delete clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		search, _ := cmd.Flags().GetString("search")
		clients = service.ApplyClientFilter(clients, search)

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		// Print table header
		fmt.Printf("%-26s %-22s %-28s %s\n", "ID", "Name", "Email", "Phone")
		fmt.Println("------------------------------------------------------------------------------------------")

		for _, client := range clients {
			fmt.Printf("%-26s %-22s %-28s %s\n",
				client.ID,
				truncate(client.Name, 22),
				truncate(client.Email, 28),
				client.Phone,
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name] [email]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client := domain.NewClient(args[0], args[1])
		client.Phone, _ = cmd.Flags().GetString("phone")
		client.Address, _ = cmd.Flags().GetString("address")

		created, err := appInstance.ClientRepo.Create(ctx, client)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		existing, err := findClient(ctx, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") {
			existing.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("email") {
			existing.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("phone") {
			existing.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("address") {
			existing.Address, _ = cmd.Flags().GetString("address")
		}

		updated, err := appInstance.ClientRepo.Update(ctx, existing.ID, existing)
		if err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", updated.Name)
		return nil
	},
}

var clientsRemoveCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClient(ctx, args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			answer, err := promptLine(fmt.Sprintf("Delete client %q? Their invoices keep a dangling reference. [y/N]: ", client.Name))
			if err != nil {
				return err
			}
			if answer != "y" && answer != "Y" {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := appInstance.ClientRepo.Delete(ctx, client.ID); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("✓ Client deleted: %s\n", client.Name)
		return nil
	},
}

// findClient resolves an id or exact name against the client list
func findClient(ctx context.Context, idOrName string) (*domain.Client, error) {
	clients, err := appInstance.ClientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	for _, c := range clients {
		if c.ID == idOrName || c.Name == idOrName {
			return c, nil
		}
	}
	return nil, fmt.Errorf("client not found: %s", idOrName)
}

// truncate truncates a string to maxLen runes with ellipsis
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsUpdateCmd)
	clientsCmd.AddCommand(clientsRemoveCmd)

	clientsListCmd.Flags().String("search", "", "Filter by name or email substring")

	clientsAddCmd.Flags().String("phone", "", "Phone number")
	clientsAddCmd.Flags().String("address", "", "Postal address")

	clientsUpdateCmd.Flags().String("name", "", "New name")
	clientsUpdateCmd.Flags().String("email", "", "New email")
	clientsUpdateCmd.Flags().String("phone", "", "New phone number")
	clientsUpdateCmd.Flags().String("address", "", "New address")

	clientsRemoveCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
