package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/bassamadnan/mailsort/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const user = "me"

// Client pulls recent inbox messages so they can be classified.
type Client struct {
	srv      *gmail.Service
	settings config.GmailSettings
	logger   *zap.Logger
}

// NewClient authenticates against Gmail. When no cached token exists it runs
// the interactive OAuth flow on the terminal, so it must be called before the
// TUI takes over.
func NewClient(ctx context.Context, settings config.GmailSettings, logger *zap.Logger) (*Client, error) {
	b, err := os.ReadFile(settings.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	httpClient, err := getOAuthClient(ctx, oauthConfig, settings.TokenFile)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{srv: srv, settings: settings, logger: logger}, nil
}

func getOAuthClient(ctx context.Context, oauthConfig *oauth2.Config, tokenFile string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, oauthConfig)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}
	return oauthConfig.Client(ctx, tok), nil
}

func getTokenFromWeb(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)
	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}
	tok, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	fmt.Printf("Saving credential file to: %s\n", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// FetchBodies returns the text of the most recent matching inbox messages,
// oldest first, with ignored senders removed.
func (c *Client) FetchBodies(ctx context.Context) ([]string, error) {
	list, err := c.srv.Users.Messages.List(user).
		MaxResults(c.settings.FetchCount).
		Q(c.settings.Query).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %w", err)
	}
	c.logger.Info("Fetched message list", zap.Int("messages", len(list.Messages)), zap.String("query", c.settings.Query))

	msgs := make([]Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		full, err := c.srv.Users.Messages.Get(user, m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("Unable to retrieve full message", zap.String("id", m.Id), zap.Error(err))
			continue
		}
		msgs = append(msgs, parseMessage(full))
	}
	return selectBodies(msgs, c.settings.IgnoreSenders, c.logger), nil
}

func parseMessage(msg *gmail.Message) Message {
	m := Message{ID: msg.Id, Snippet: msg.Snippet, InternalDate: msg.InternalDate}
	if msg.Payload == nil {
		return m
	}
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			m.From = header.Value
		case "Subject":
			m.Subject = header.Value
		}
	}
	m.Body = getPlainTextBody(msg.Payload)
	return m
}

func getPlainTextBody(payload *gmail.MessagePart) string {
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err == nil {
			return string(data)
		}
	}
	for _, part := range payload.Parts {
		mimeType := strings.ToLower(part.MimeType)
		if strings.HasPrefix(mimeType, "text/") || strings.HasPrefix(mimeType, "multipart/") {
			if body := getPlainTextBody(part); body != "" {
				return body
			}
		}
	}
	return ""
}

func isIgnored(m Message, ignoreSenders []string) bool {
	from := strings.ToLower(m.From)
	for _, sender := range ignoreSenders {
		if strings.Contains(from, strings.ToLower(sender)) {
			return true
		}
	}
	return false
}

func selectBodies(msgs []Message, ignoreSenders []string, logger *zap.Logger) []string {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].InternalDate < msgs[j].InternalDate
	})
	bodies := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if isIgnored(m, ignoreSenders) {
			logger.Debug("Skipping message from ignored sender", zap.String("from", m.From))
			continue
		}
		if text := strings.TrimSpace(m.Text()); text != "" {
			bodies = append(bodies, text)
		}
	}
	return bodies
}
