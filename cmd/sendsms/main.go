// Command sendsms performs a one-off broadcast: it sends a message to the
// given phones through the gateway and fetches its delivery status once.
// Gateway credentials come from the environment, like the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/anderskate/async-sms-sending/environments"
	"github.com/anderskate/async-sms-sending/pkg/logger"
	"github.com/anderskate/async-sms-sending/pkg/smsc"
)

func main() {
	phones := flag.String("phones", "", "Comma-separated phone numbers where SMS will be sent")
	message := flag.String("message", "Hello World!", "Message for sending")
	lifetime := flag.Int("lifetime", 1, "Lifetime in hours of undelivered messages")
	flag.Parse()

	if *phones == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -phones")
		flag.Usage()
		os.Exit(2)
	}

	logger.Init()
	cfg := environments.Load()

	if cfg.Smsc.Login == "" || cfg.Smsc.Password == "" {
		logger.Fatalf("SMSC_LOGIN and SMSC_PASSWORD are required but not set")
	}

	client := smsc.NewClient(cfg.Smsc)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sendResp, err := client.Call(ctx, smsc.OperationSend, smsc.Payload{
		"phones": *phones,
		"mes":    *message,
		"sender": cfg.Smsc.Sender,
		"valid":  strconv.Itoa(*lifetime),
	})
	if err != nil {
		logger.Fatalf("Failed to send message: %v", err)
	}

	printJSON("send response", sendResp)

	result, err := sendResp.SendResult()
	if err != nil {
		logger.Fatalf("Gateway returned no mailing id: %v", err)
	}

	statusResp, err := client.Call(ctx, smsc.OperationStatus, smsc.Payload{
		"phone": *phones,
		"id":    result.ID,
	})
	if err != nil {
		logger.Fatalf("Failed to fetch message status: %v", err)
	}

	printJSON("status response", statusResp)
}

func printJSON(label string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to render %s: %v", label, err)
	}
	fmt.Printf("%s:\n%s\n", label, data)
}
