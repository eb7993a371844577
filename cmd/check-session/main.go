package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/truong-kyle/ht6/internal/config"
	"github.com/truong-kyle/ht6/internal/payments/stripeadapter"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/check-session/main.go <session_id>")
		fmt.Println("Example: go run cmd/check-session/main.go cs_test_a1B2c3")
		os.Exit(1)
	}

	sessionID := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	provider := stripeadapter.New(cfg.Stripe, logger)

	fmt.Printf("🔍 Looking up checkout session: %s\n\n", sessionID)

	sess, err := provider.RetrieveSession(context.Background(), sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session:        %s\n", sess.ID)
	fmt.Printf("Status:         %s\n", sess.Status)
	fmt.Printf("Payment status: %s\n", sess.PaymentStatus)
	fmt.Printf("Amount total:   %d\n", sess.AmountTotal)
	if sess.CustomerEmail != "" {
		fmt.Printf("Customer email: %s\n", sess.CustomerEmail)
	}
	if sess.PaymentIntentID != "" {
		fmt.Printf("Payment intent: %s (%s)\n", sess.PaymentIntentID, sess.PaymentIntentStatus)
	}
}
