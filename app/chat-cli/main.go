package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/rakasatria/folio/internal/chatclient"
	"github.com/rakasatria/folio/internal/models"
)

// chat-cli is a terminal client for the site chat endpoint, mostly
// useful for poking at a running server without a browser.
func main() {
	server := flag.String("server", "ws://localhost:8080/ws/chat", "chat websocket URL")
	name := flag.String("name", "Visitor", "display name")
	token := flag.String("token", "", "session token (optional)")
	flag.Parse()

	u, err := url.Parse(*server)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad server URL:", err)
		os.Exit(1)
	}
	q := u.Query()
	q.Set("name", *name)
	if *token != "" {
		q.Set("token", *token)
	}
	u.RawQuery = q.Encode()

	selfID := "guest:" + uuid.NewString()

	// coalesced change signal: the printer always reads a fresh
	// snapshot, so dropped signals lose nothing
	changed := make(chan struct{}, 1)
	onChange := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	client, err := chatclient.Dial(context.Background(), u.String(), selfID, *name, onChange)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect failed:", err)
		os.Exit(1)
	}
	defer client.Close()

	go func() {
		printed := 0
		for range changed {
			msgs := client.Session().Messages()
			if len(msgs) < printed {
				printed = 0 // history replay replaced the list
			}
			for ; printed < len(msgs); printed++ {
				printMessage(msgs[printed])
			}
		}
	}()

	fmt.Println("connected; type a message and press enter (ctrl-d to quit)")

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		body := strings.TrimSpace(sc.Text())
		if body == "" {
			continue
		}
		client.Session().Send(body)
	}
}

func printMessage(m models.ChatMessage) {
	tag := ""
	switch m.Status {
	case models.MessagePending:
		tag = " [sending]"
	case models.MessageError:
		tag = " [failed]"
	}
	fmt.Printf("%s %s: %s%s\n", m.CreatedAt.Local().Format("15:04"), m.SenderName, m.Body, tag)
}
