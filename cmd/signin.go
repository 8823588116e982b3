package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	signinEmail    string
	signinPassword string
)

// signinCmd represents the signin command
var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to unlock the chat",
	Long: `Sign in with an email address and a password of at least 6 characters.

The session is kept on this machine only. Nothing is sent to the advice
service, and the password is not stored.

If --password is omitted, it is read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		password := signinPassword
		if !cmd.Flags().Changed("password") {
			fmt.Fprint(os.Stderr, "Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		guard, err := a.guard(cmd.Context())
		if err != nil {
			return err
		}
		sess, err := guard.SignIn(cmd.Context(), signinEmail, password)
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s.\n", sess.Email)
		fmt.Println("\nStart chatting with:\n  fincoach chat -i")
		return nil
	},
}

// signoutCmd represents the signout command
var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		guard, err := a.guard(cmd.Context())
		if err != nil {
			return err
		}
		if err := guard.SignOut(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		guard, err := a.guard(cmd.Context())
		if err != nil {
			return err
		}
		sess, ok := guard.Current()
		if !ok {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Println(sess.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	signinCmd.Flags().StringVar(&signinEmail, "email", "", "Email address")
	signinCmd.Flags().StringVar(&signinPassword, "password", "", "Password (read from stdin when omitted)")
	signinCmd.MarkFlagRequired("email")
}
