package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type sesSender struct {
	client        *sesv2.Client
	fromAddress   string
	fromName      string
	reviewBaseURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, reviewBaseURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:        client,
		fromAddress:   fromAddress,
		fromName:      fromName,
		reviewBaseURL: reviewBaseURL,
	}, nil
}

func (s *sesSender) SendReviewAlert(ctx context.Context, toEmail string, documentID uuid.UUID, score float64, decision domain.RoutingDecision) error {
	reviewURL := fmt.Sprintf("%s/review/%s", s.reviewBaseURL, documentID)

	subject := fmt.Sprintf("Document %s needs full review", documentID)
	htmlBody := buildReviewAlertHTML(documentID, score, reviewURL)
	textBody := fmt.Sprintf(
		"Document %s was routed to full review with overall confidence %.2f.\n\nOpen it here:\n%s\n\nDocflow",
		documentID, score, reviewURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewAlertHTML(documentID uuid.UUID, score float64, reviewURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Document needs full review</h2>
  <p>Document <strong>%s</strong> came out of processing with an overall confidence of <strong>%.2f</strong> and was routed to full review.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Open Review</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Docflow - Trade Document Processing</p>
</body>
</html>`, documentID, score, reviewURL, reviewURL)
}
