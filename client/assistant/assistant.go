// Package assistant is the travel chat widget: a single-turn
// request/response loop against a generative-language endpoint, with the
// conversation held in memory.
package assistant

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aboodsamad/TravelMateV0/client/places"

	"github.com/goccy/go-json"
)

const (
	// Greeting opens every conversation.
	Greeting = "Hi! I'm your travel assistant. Ask me anything about the places in our catalog!"

	// Fallback is appended whenever the endpoint fails or returns no text.
	Fallback = "Sorry, I couldn't generate a response. Please try again!"

	systemInstruction = "You are a helpful travel assistant for a tourism catalog. " +
		"Answer questions about destinations using the place data provided. " +
		"Keep answers short and friendly."

	// contextCap bounds how many places are summarized into the prompt.
	contextCap = 20
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Chat holds one conversation. Safe for concurrent use, though the UI
// drives it from a single loop.
type Chat struct {
	mu       sync.Mutex
	endpoint string
	apiKey   string
	http     *http.Client
	history  []Message
}

func NewChat(endpoint, apiKey string) *Chat {
	c := &Chat{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{},
	}
	c.history = []Message{{Role: RoleAssistant, Content: Greeting}}
	return c
}

func (c *Chat) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}

// Reset discards the conversation and starts over with the greeting.
func (c *Chat) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = []Message{{Role: RoleAssistant, Content: Greeting}}
}

// Send appends the user's question, asks the endpoint and appends the
// reply. Any failure yields the fallback text instead of an error; the
// conversation always advances by exactly two messages.
func (c *Chat) Send(ctx context.Context, question string, placeContext []places.Place) Message {
	c.mu.Lock()
	c.history = append(c.history, Message{Role: RoleUser, Content: question})
	c.mu.Unlock()

	reply := Message{Role: RoleAssistant, Content: c.ask(ctx, question, placeContext)}

	c.mu.Lock()
	c.history = append(c.history, reply)
	c.mu.Unlock()
	return reply
}

func (c *Chat) ask(ctx context.Context, question string, placeContext []places.Place) string {
	prompt := buildPrompt(question, placeContext)

	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	})
	if err != nil {
		return Fallback
	}

	u := c.endpoint
	if c.apiKey != "" {
		u += "?key=" + c.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Fallback
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Fallback
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Fallback
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return Fallback
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return Fallback
	}
	return text
}

// buildPrompt folds the system instruction, up to contextCap place
// summaries and the question into one prompt string.
func buildPrompt(question string, placeContext []places.Place) string {
	var b strings.Builder
	b.WriteString(systemInstruction)

	if len(placeContext) > 0 {
		if len(placeContext) > contextCap {
			placeContext = placeContext[:contextCap]
		}
		b.WriteString("\n\nPlaces:\n")
		for _, p := range placeContext {
			b.WriteString(summarize(p))
			b.WriteString("\n")
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func summarize(p places.Place) string {
	rating := "unrated"
	if p.Rating != nil {
		rating = fmt.Sprintf("%.1f", *p.Rating)
	}
	return fmt.Sprintf("- %s (%s, %s): rating %s, %d visitors", p.Location, p.Country, p.Category, rating, p.Visitors)
}
