package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/app"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/config"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/tui"
)

func main() {
	// Optional local overrides; absence is not an error
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newContainer() (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.NewContainer(cfg)
}

func runScreen(start tui.Screen) error {
	container, err := newContainer()
	if err != nil {
		return err
	}
	return container.Run(start)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bazaar",
		Short: "BharatAutoBazaar from your terminal",
		Long:  "Browse used cars, sell your own and track your listings on BharatAutoBazaar.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(tui.ScreenBrowse)
		},
		SilenceUsage: true,
	}

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newSellCmd(),
		newDashboardCmd(),
		newBrowseCmd(),
		newAdminCmd(),
		newEMICmd(),
	)
	return root
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in with your phone number or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(tui.ScreenLogin)
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newContainer()
			if err != nil {
				return err
			}
			if err := container.Logout(context.Background()); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newSellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sell",
		Short: "List your car for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(tui.ScreenSell)
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "See your listings and stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(tui.ScreenDashboard)
		},
	}
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Search cars for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(tui.ScreenBrowse)
		},
	}
}

func newAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Moderate pending listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(tui.ScreenAdmin)
		},
	}
}

func newEMICmd() *cobra.Command {
	var (
		price       int
		downPayment int
		rate        float64
		months      int
	)

	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Estimate the monthly installment for a car loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := services.CalculateEMI(price, downPayment, rate, months)
			if err != nil {
				return err
			}
			fmt.Printf("Loan amount:    ₹%d\n", quote.Principal)
			fmt.Printf("Monthly EMI:    ₹%d for %d months\n", quote.MonthlyEMI, quote.Months)
			fmt.Printf("Total payable:  ₹%d\n", quote.TotalPayable)
			fmt.Printf("Total interest: ₹%d\n", quote.TotalInterest)
			return nil
		},
	}

	cmd.Flags().IntVar(&price, "price", 0, "car price in rupees")
	cmd.Flags().IntVar(&downPayment, "down", 0, "down payment in rupees")
	cmd.Flags().Float64Var(&rate, "rate", 9.5, "annual interest rate in percent")
	cmd.Flags().IntVar(&months, "months", 60, "loan tenure in months")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}
