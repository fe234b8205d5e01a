package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sidibe/caisse/internal/adapter/http/dto"
	"github.com/sidibe/caisse/internal/money"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caisse-cli",
		Short: "Caisse CLI tool",
		Long:  `A command line interface for interacting with the caisse API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the caisse API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balancesCmd := &cobra.Command{
		Use:   "balances [ownerID]",
		Short: "Show the caisse balances of an owner",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalances(args[0])
		},
	}

	creditCmd := &cobra.Command{
		Use:   "credit",
		Short: "Credit operations",
	}

	creditGetCmd := &cobra.Command{
		Use:   "get [reference]",
		Short: "Show a credit and its payments",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showCredit(args[0])
		},
	}

	creditListCmd := &cobra.Command{
		Use:   "list [shopID]",
		Short: "List the credits of a shop",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listCredits(args[0])
		},
	}

	creditCmd.AddCommand(creditGetCmd, creditListCmd)
	rootCmd.AddCommand(balancesCmd, creditCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string, out any) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if err := json.Unmarshal(body, out); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
}

func showBalances(ownerID string) {
	var accounts []dto.AccountResponse
	get("/api/v1/owners/"+ownerID+"/balances", &accounts)

	fmt.Printf("Balances for %s\n", ownerID)
	for _, a := range accounts {
		fmt.Printf("  %-22s %s\n", a.Kind, money.Format(a.Balance))
	}
}

func showCredit(reference string) {
	var detail dto.CreditDetailResponse
	get("/api/v1/credits/"+reference, &detail)

	c := detail.Credit
	fmt.Printf("Credit %s (%s)\n", c.Reference, c.Status)
	fmt.Printf("  Client:    %s\n", c.ClientID)
	fmt.Printf("  Direction: %s / %s\n", c.Direction, c.Kind)
	fmt.Printf("  Amount:    %s\n", money.Format(c.Amount))
	fmt.Printf("  Paid:      %s\n", money.Format(c.AmountPaid))
	fmt.Printf("  Remaining: %s\n", money.Format(c.AmountRemaining))

	if len(detail.Payments) > 0 {
		fmt.Println("  Payments:")
		for _, p := range detail.Payments {
			fmt.Printf("    %s  %s  %s\n", p.CreatedAt.Format("2006-01-02"), money.Format(p.Amount), p.Status)
		}
	}
}

func listCredits(shopID string) {
	var credits []dto.CreditResponse
	get("/api/v1/credits?shop_id="+shopID, &credits)

	fmt.Printf("Credits for shop %s\n", shopID)
	for _, c := range credits {
		fmt.Printf("  %s  %-11s  %-9s  remaining %s\n",
			c.Reference, c.Status, c.Direction, money.Format(c.AmountRemaining))
	}
}
