package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagContactEmail   string
	flagContactPhone   string
	flagContactCompany string
	flagContactTitle   string
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage contacts",
	RunE:  runContactsList,
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts",
	RunE:  runContactsList,
}

var contactsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsAdd,
}

var contactsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsShow,
}

var contactsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsRm,
}

func init() {
	contactsAddCmd.Flags().StringVar(&flagContactEmail, "email", "", "Email address")
	contactsAddCmd.Flags().StringVar(&flagContactPhone, "phone", "", "Phone number")
	contactsAddCmd.Flags().StringVar(&flagContactCompany, "company", "", "Company name")
	contactsAddCmd.Flags().StringVar(&flagContactTitle, "title", "", "Job title")

	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsAddCmd)
	contactsCmd.AddCommand(contactsShowCmd)
	contactsCmd.AddCommand(contactsRmCmd)
	rootCmd.AddCommand(contactsCmd)
}

func runContactsList(_ *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	contacts, err := st.ListContacts(context.Background())
	if err != nil {
		return err
	}

	if len(contacts) == 0 {
		fmt.Println("\n  No contacts yet. Add one with `crmd contacts add <name>`.")
		return nil
	}

	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		company := cli.FormatOptional(c.CompanyName)
		if company == "—" {
			company = cli.FormatOptional(c.Company)
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			cli.Truncate(c.Name, 28),
			cli.Truncate(cli.FormatOptional(c.Email), 30),
			cli.Truncate(company, 24),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Contacts (%d)", len(contacts)),
		Headers: []string{"ID", "Name", "Email", "Company"},
		Rows:    rows,
	}))
	return nil
}

func runContactsAdd(_ *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	c := model.Contact{Name: args[0]}
	if flagContactEmail != "" {
		c.Email = &flagContactEmail
	}
	if flagContactPhone != "" {
		c.Phone = &flagContactPhone
	}
	if flagContactCompany != "" {
		c.Company = &flagContactCompany
	}
	if flagContactTitle != "" {
		c.Title = &flagContactTitle
	}

	created, err := st.CreateContact(context.Background(), c)
	if err != nil {
		return err
	}

	fmt.Printf("  Added contact #%d: %s\n", created.ID, created.Name)
	return nil
}

func runContactsShow(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact id %q", args[0])
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.GetContact(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  #%d %s\n", c.ID, c.Name)
	fmt.Printf("  Email:   %s\n", cli.FormatOptional(c.Email))
	fmt.Printf("  Phone:   %s\n", cli.FormatOptional(c.Phone))
	fmt.Printf("  Company: %s\n", cli.FormatOptional(c.Company))
	fmt.Printf("  Title:   %s\n", cli.FormatOptional(c.Title))
	fmt.Printf("  Created: %s\n", cli.FormatDate(c.CreatedAt))
	return nil
}

func runContactsRm(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact id %q", args[0])
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteContact(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("  Deleted contact #%d\n", id)
	return nil
}
