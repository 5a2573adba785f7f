package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

var loginNewsletter bool

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in with your email address",
	Long: `Log in with your email address. A new account starts on the free plan
with three AI queries and one document credit.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current account and remaining credit",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List plans and credit packs",
	Args:  cobra.NoArgs,
	Run:   runProducts,
}

var purchaseCmd = &cobra.Command{
	Use:   "purchase [product-id]",
	Short: "Buy a plan or credit pack",
	Args:  cobra.ExactArgs(1),
	RunE:  runPurchase,
}

func init() {
	loginCmd.Flags().BoolVar(&loginNewsletter, "newsletter", false, "subscribe to the lexdraft newsletter")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(purchaseCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	profile, err := accountService.Login(cmd.Context(), args[0], loginNewsletter)
	if err != nil {
		return err
	}

	cmd.Printf("Logged in as %s\n", profile.Email)
	printBalance(cmd, profile)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}
	if err := accountService.Logout(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	profile, err := accountService.Current(cmd.Context())
	if errors.Is(err, domain.ErrNotLoggedIn) {
		cmd.Println("Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Printf("%s\n", profile.Email)
	printBalance(cmd, profile)
	return nil
}

func printBalance(cmd *cobra.Command, profile *domain.UserProfile) {
	if profile.IsPro() {
		cmd.Println("  Plan: Business Pro (unlimited queries and documents)")
		return
	}
	cmd.Println("  Plan: Free")
	cmd.Printf("  AI queries left: %d\n", profile.AvailableAIQueries)
	cmd.Printf("  Document credits: %d\n", profile.PurchasedDocSlots)
}

func runProducts(cmd *cobra.Command, _ []string) {
	for _, p := range domain.Products() {
		price := fmt.Sprintf("$%d", p.Price)
		if p.Recurring {
			price += "/month"
		}
		cmd.Printf("%-10s %s  %s\n", p.ID, p.Name, price)
		if p.Subtitle != "" {
			cmd.Printf("           %s\n", p.Subtitle)
		}
		for _, f := range p.Features {
			cmd.Printf("           - %s\n", f)
		}
		cmd.Println()
	}
	cmd.Println("Buy with: lexdraft purchase <id>")
}

func runPurchase(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	productID := strings.ToLower(strings.TrimSpace(args[0]))
	product, ok := domain.LookupProduct(productID)
	if !ok {
		return fmt.Errorf("%w: %q (see 'lexdraft products')", domain.ErrUnknownProduct, args[0])
	}

	profile, err := accountService.Purchase(cmd.Context(), product.ID)
	if err != nil {
		return err
	}

	cmd.Printf("Purchased %s.\n", product.Name)
	printBalance(cmd, profile)
	return nil
}
