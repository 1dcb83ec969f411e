package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
)

// Sends a signed payment_intent.succeeded event to a locally running API so
// the reconciliation path can be exercised without real Stripe traffic.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		log.Fatal("STRIPE_WEBHOOK_SECRET must be set in .env")
	}

	intentID := "pi_test_123"
	if len(os.Args) > 1 {
		intentID = os.Args[1]
	}

	target := os.Getenv("WEBHOOK_TARGET")
	if target == "" {
		target = "http://localhost:8080/api/webhooks/stripe"
	}

	payload := []byte(fmt.Sprintf(
		`{"id":"evt_test_1","type":"payment_intent.succeeded","data":{"object":{"id":%q,"status":"succeeded"}}}`,
		intentID,
	))

	timestamp := time.Now().Unix()
	signature := hex.EncodeToString(stripe.ComputeSignature(timestamp, payload, secret))
	header := fmt.Sprintf("t=%d,v1=%s", timestamp, signature)

	fmt.Printf("Sending payment_intent.succeeded for %s to %s\n", intentID, target)

	req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		log.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", header)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Body:   %s\n", body)
}
