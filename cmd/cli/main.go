package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"stockroom/internal/database"
	"stockroom/pkg/utils"
)

const apiManagement = "management"

var (
	apiBaseURL string
	authToken  string
)

type ResponseError struct {
	Message string `json:"message"`
}

var apiServiceBase = func() *resty.Client {
	return resty.New().
		SetBaseURL(apiBaseURL + "/api").
		SetHeader("Accept", "application/json").
		SetAuthToken(authToken).
		SetError(&ResponseError{}).
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				return fmt.Errorf(resp.Error().(*ResponseError).Message)
			}

			return nil
		})
}

var rootCmd = &cobra.Command{
	Use:   "stockroom",
	Short: "Stockroom CLI",
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a new user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		password := utils.GenerateSecureString(12)

		resp, err := apiServiceBase().R().
			SetBody(map[string]string{
				"username": username,
				"password": password,
			}).
			SetResult(&database.User{}).
			Post(apiManagement + "/user")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		user := resp.Result().(*database.User)

		fmt.Println("User ID  :", user.ID)
		fmt.Println("Username :", user.Username)
		fmt.Println("Role     :", user.Role)
		fmt.Println("Password :", password)
	},
}

var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <user_id>",
	Short: "Reset user password",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := args[0]
		password := utils.GenerateSecureString(12)

		resp, err := apiServiceBase().R().
			SetBody(map[string]string{
				"password": password,
			}).
			SetResult(&database.User{}).
			Post(fmt.Sprintf("%s/user/%s/reset-password", apiManagement, userID))

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		user := resp.Result().(*database.User)

		fmt.Println("User ID :", user.ID)
		fmt.Println("Password:", password)
	},
}

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products",
}

var productAddCmd = &cobra.Command{
	Use:   "add <sku> <name> <price> <quantity>",
	Short: "Add a new product",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetBody(map[string]any{
				"sku":      args[0],
				"name":     args[1],
				"price":    mustAtoi(args[2]),
				"quantity": mustAtoi(args[3]),
			}).
			Post("products")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		fmt.Println("Status Code:", resp.StatusCode())
	},
}

func mustAtoi(s string) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		fmt.Fprintln(os.Stderr, "invalid number:", s)
		os.Exit(1)
	}
	return n
}

func main() {
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userResetPasswordCmd)
	productCmd.AddCommand(productAddCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(productCmd)

	rootCmd.PersistentFlags().StringVarP(&apiBaseURL, "url", "u", "http://localhost:3000", "API base URL")
	rootCmd.PersistentFlags().StringVarP(&authToken, "token", "t", "", "Bearer token")
	rootCmd.MarkPersistentFlagRequired("token")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
