package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchside/cricpix/internal/domain"
)

// AuthCmd creates the auth parent command
func AuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage account and session",
		Long:  "Login, signup, logout, and check session status for the cricpix CLI",
	}

	cmd.AddCommand(AuthLoginCmd())
	cmd.AddCommand(AuthSignupCmd())
	cmd.AddCommand(AuthLogoutCmd())
	cmd.AddCommand(AuthStatusCmd())

	return cmd
}

// AuthLoginCmd creates the auth login command
func AuthLoginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		Long:  "Authenticate against the backend and store the session in the global config (~/.config/cricpix/config.json)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthLogin(cmd, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	return cmd
}

// AuthSignupCmd creates the auth signup command
func AuthSignupCmd() *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthSignup(cmd, name, email, password)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	return cmd
}

// AuthLogoutCmd creates the auth logout command
func AuthLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthLogout(cmd)
		},
	}

	return cmd
}

// AuthStatusCmd creates the auth status command
func AuthStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		Long:  "Display the backend URL source and whether the stored session is still valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAuthStatus(cmd, outputJSON)
		},
	}

	return cmd
}

func runAuthLogin(cmd *cobra.Command, email, password string) error {
	var err error
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptLine("Password: "); err != nil {
			return err
		}
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	var resp domain.AuthResponse
	sessionCookie, err := api.PostForSession("/api/login", domain.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if !resp.Success {
		if resp.Message != "" {
			return fmt.Errorf("login failed: %s", resp.Message)
		}
		return fmt.Errorf("login failed")
	}

	config := &GlobalConfig{
		APIURL:  api.BaseURL(),
		Session: sessionCookie,
		Email:   email,
	}
	if err := SaveGlobalConfig(config); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("Successfully logged in as %s\n", email)
	return nil
}

func runAuthSignup(cmd *cobra.Command, name, email, password string) error {
	var err error
	if name == "" {
		if name, err = promptLine("Name: "); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	var confirm string
	if password == "" {
		if password, err = promptLine("Password: "); err != nil {
			return err
		}
		if confirm, err = promptLine("Confirm password: "); err != nil {
			return err
		}
	} else {
		confirm = password
	}

	if name == "" || email == "" || password == "" {
		return fmt.Errorf("name, email, and password are required")
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	var resp domain.AuthResponse
	if err := api.Post("/api/signup", domain.SignupRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	if !resp.Success {
		if resp.Message != "" {
			return fmt.Errorf("signup failed: %s", resp.Message)
		}
		return fmt.Errorf("signup failed")
	}

	if resp.Message != "" {
		fmt.Println(resp.Message)
	} else {
		fmt.Println("Account created. Run 'cricpix auth login' to sign in.")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	// Best effort: the server invalidates its side, but a dead server
	// must not keep us logged in locally.
	if api.HasSession() {
		var resp domain.AuthResponse
		if err := api.Post("/api/logout", nil, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", err)
		}
	}

	config, err := LoadGlobalConfig()
	if err != nil {
		return err
	}
	if config == nil {
		fmt.Println("Not logged in")
		return nil
	}

	config.Session = ""
	config.Email = ""
	if err := SaveGlobalConfig(config); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Println("Successfully logged out")
	return nil
}

func runAuthStatus(cmd *cobra.Command, outputJSON bool) error {
	flagURL := ""
	if cmd != nil {
		flagURL, _ = cmd.Flags().GetString("api-url")
	}
	source, apiURL, sessionCookie := GetCredentialSource(flagURL)

	status := map[string]any{
		"api_url":       apiURL,
		"source":        string(source),
		"authenticated": false,
	}

	if sessionCookie != "" {
		api := NewAPIClientWithConfig(apiURL, sessionCookie)
		var resp domain.UserResponse
		if err := api.Get("/api/user", &resp); err == nil && resp.Success && resp.User != nil {
			status["authenticated"] = true
			status["email"] = resp.User.Email
			status["name"] = resp.User.Name
		} else {
			status["session"] = "stored but not accepted by the server"
		}
	}

	if outputJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("API URL: %s (from %s)\n", apiURL, source)
	if status["authenticated"] == true {
		fmt.Printf("Authenticated: yes\n")
		fmt.Printf("Account: %s <%s>\n", status["name"], status["email"])
		return nil
	}
	if note, ok := status["session"]; ok {
		fmt.Printf("Authenticated: no (%s)\n", note)
	} else {
		fmt.Println("Not authenticated")
		fmt.Println("Run 'cricpix auth login' to authenticate")
	}
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}
