package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	emaildomain "mailrag-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback emaildomain.TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t.AccessToken, t.RefreshToken); err != nil {
			log.Printf("Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// getGmailService creates a Gmail client with the user's access token
func (s *Service) getGmailService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh emaildomain.TokenUpdateFunc) (*gmail.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}

	return srv, nil
}

// FetchRecent retrieves the most recent messages from the user's mailbox,
// with the fields the corpus keeps: id, subject, sender, snippet and the
// plain-text body.
func (s *Service) FetchRecent(ctx context.Context, accessToken, refreshToken string, maxResults int, onTokenRefresh emaildomain.TokenUpdateFunc) ([]emaildomain.Email, error) {
	srv, err := s.getGmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = 10
	}

	listResp, err := srv.Users.Messages.List("me").MaxResults(int64(maxResults)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %w", err)
	}

	emails := make([]emaildomain.Email, 0, len(listResp.Messages))
	for _, m := range listResp.Messages {
		msg, err := srv.Users.Messages.Get("me", m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to get message %s: %w", m.Id, err)
		}
		emails = append(emails, convertGmailMessage(msg))
	}

	return emails, nil
}

func convertGmailMessage(msg *gmail.Message) emaildomain.Email {
	return emaildomain.Email{
		ID:      msg.Id,
		Subject: getHeader(msg.Payload.Headers, "Subject"),
		From:    getHeader(msg.Payload.Headers, "From"),
		Snippet: msg.Snippet,
		Body:    getPlainTextBody(msg.Payload),
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

// getPlainTextBody walks the MIME tree and concatenates every text/plain
// part, decoding the base64url payloads.
func getPlainTextBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err == nil {
			return string(data)
		}
	}

	var body string
	var findBody func(parts []*gmail.MessagePart)
	findBody = func(parts []*gmail.MessagePart) {
		for _, part := range parts {
			if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
				data, err := base64.URLEncoding.DecodeString(part.Body.Data)
				if err == nil {
					body += string(data)
				}
			}
			if len(part.Parts) > 0 {
				findBody(part.Parts)
			}
		}
	}
	findBody(payload.Parts)

	return body
}
