package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/anasi-bot/oauth"
	"github.com/anasi-bot/oauth/internal/delivery"
)

var receivePort int
var receiveStatus int

func initReceiveCommand(cmd *flag.FlagSet) {
	cmd.IntVar(&receivePort, "port", 5011, "Port on which to listen for webhook requests")
	cmd.IntVar(&receiveStatus, "status", http.StatusOK, "Status code to respond with (anything but 200 triggers manual fallback)")
}

func runReceiveCommand(config *Config) error {
	r := mux.NewRouter()
	r.Path("/webhook").Methods("POST").HandlerFunc(handleWebhook)

	addr := fmt.Sprintf("localhost:%d", receivePort)
	fmt.Printf("Listening for webhook requests: run the server with BOT_WEBHOOK_URL=http://%s/webhook\n", addr)
	return http.ListenAndServe(addr, r)
}

func handleWebhook(res http.ResponseWriter, req *http.Request) {
	var payload oauth.WebhookPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		log.Printf("Failed to decode webhook payload: %v", err)
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Printf("%s %s\n", req.Method, req.URL)
	fmt.Printf("> User-Agent: %s\n", req.Header.Get("user-agent"))
	fmt.Printf("> %s: %s\n", delivery.HeaderDeliveryId, req.Header.Get(delivery.HeaderDeliveryId))
	pretty, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		log.Printf("Failed to pretty-print JSON payload: %v", err)
	}
	fmt.Printf("\n%s\n\n< %d\n", pretty, receiveStatus)

	res.WriteHeader(receiveStatus)
}
