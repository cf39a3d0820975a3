package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

var generateSessionKeyCmd = &cobra.Command{
	Use:   "generate-session-key",
	Short: "Generate a random key for signing session cookies",
	Long: `Generate a random key for signing session cookies.

Add the generated key to your configuration file as session_key.`,
	RunE: generateSessionKey,
}

func init() {
	rootCmd.AddCommand(generateSessionKeyCmd)
}

func generateSessionKey(_ *cobra.Command, _ []string) error {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate session key: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(key)

	fmt.Println("Generated session key:")
	fmt.Println()
	fmt.Printf("  %s\n", encoded)
	fmt.Println()
	fmt.Println("Add it to your configuration file:")
	fmt.Println()
	fmt.Printf("session_key: \"%s\"\n", encoded)
	fmt.Println()
	fmt.Println("Or set TEENFAITH_SESSION_KEY in the environment.")
	fmt.Println("Note: Rotating the key logs out every user!")

	return nil
}
