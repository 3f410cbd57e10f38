package report

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/TrustMod/pkg/app/moderation"
	domainErrors "github.com/NeuralTrust/TrustMod/pkg/domain/errors"
	"github.com/NeuralTrust/TrustMod/pkg/domain/installation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	domainModeration "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	domainReport "github.com/NeuralTrust/TrustMod/pkg/domain/report"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/sirupsen/logrus"
)

const (
	ReplyMissingURL       = "You must supply the url of the message that you want to report"
	ReplyInvalidURL       = "The url you provided doesn't look like a message url to me. Use the context menu on the message you want to report and choose 'Copy message url'."
	ReplyNotInstalled     = "The bot does not appear to be installed in this context"
	ReplyPrivateChat      = "I am sorry but I cannot operate in private chats at the moment."
	ReplyLoadFailed       = "Unable to load the requested message"
	ReplyUnexpectedType   = "Requested message is not of the expected type"
	ReplyUnknownReporter  = "Unable to identify reporter"
	ReplyAlreadyReported  = "You have already reported this message"
	ReplyAlreadyModerated = "This message has already been moderated but your report has been noted"
	ReplyReported         = "The message has been reported for moderation. Action will be taken if necessary."
)

type Request struct {
	// CommandClient is bound to the scope the /report command was run in.
	CommandClient platform.Client
	Initiator     string
	MessageURL    string
}

//go:generate mockery --name=Reporter --dir=. --output=./mocks --filename=reporter_mock.go --case=underscore --with-expecter
type Reporter interface {
	Report(ctx context.Context, req Request) (string, error)
}

type reporter struct {
	logger        *logrus.Logger
	installations installation.Repository
	reports       domainReport.Repository
	factory       platform.Factory
	moderator     moderation.Moderator
}

func NewReporter(
	logger *logrus.Logger,
	installations installation.Repository,
	reports domainReport.Repository,
	factory platform.Factory,
	moderator moderation.Moderator,
) Reporter {
	return &reporter{
		logger:        logger,
		installations: installations,
		reports:       reports,
		factory:       factory,
		moderator:     moderator,
	}
}

// Report moderates a message on a member's request. Every outcome the member
// should see is returned as the reply text; errors are infrastructure failures.
func (r *reporter) Report(ctx context.Context, req Request) (string, error) {
	if req.MessageURL == "" {
		return ReplyMissingURL, nil
	}
	loc, ok := message.ParseMessageURL(req.MessageURL)
	if !ok {
		return ReplyInvalidURL, nil
	}

	client, err := r.autonomousClient(ctx, req.CommandClient)
	if err != nil {
		if domainErrors.IsNotFoundError(err) {
			return ReplyNotInstalled, nil
		}
		return "", err
	}
	s := client.Scope()
	log := r.logger.WithFields(logrus.Fields{
		"scope":         s.String(),
		"message_index": loc.MessageIndex,
	})

	summary, err := client.ChatSummary(ctx)
	if err != nil || !summary.IsPublicGroup() {
		if err != nil {
			log.WithError(err).Warn("failed to load chat summary")
		}
		return ReplyPrivateChat, nil
	}

	var threadRoot *int64
	midPoint := loc.MessageIndex
	if loc.ThreadIndex != nil {
		root := loc.MessageIndex
		threadRoot = &root
		midPoint = *loc.ThreadIndex
	}
	events, err := client.ChatEvents(ctx, platform.EventsWindow{
		MidPointMessageIndex: midPoint,
		MaxMessages:          1,
		MaxEvents:            1,
	}, threadRoot)
	if err != nil {
		log.WithError(err).Warn("failed to load reported message")
		return ReplyLoadFailed, nil
	}
	if len(events) == 0 {
		return ReplyUnexpectedType, nil
	}
	ev, ok := events[0].MessageEvent()
	if !ok {
		return ReplyUnexpectedType, nil
	}
	if req.Initiator == "" {
		return ReplyUnknownReporter, nil
	}

	reported, err := r.reports.HasUserReported(ctx, s, ev.Message.ID, req.Initiator)
	if err != nil {
		return "", fmt.Errorf("failed to check report: %w", err)
	}
	if reported {
		return ReplyAlreadyReported, nil
	}
	if _, err := r.reports.Record(ctx, s, ev.Message.ID, req.Initiator); err != nil {
		return "", fmt.Errorf("failed to record report: %w", err)
	}

	status, err := r.moderator.Moderate(ctx, moderation.Request{
		Client: client,
		Event:  ev,
		Thread: threadRoot,
		Source: domainModeration.SourceReport,
	})
	if err != nil {
		log.WithError(err).Error("failed to moderate reported message")
	}
	log.WithFields(logrus.Fields{
		"message_id": ev.Message.ID,
		"status":     status,
	}).Info("message reported")

	if status == domainModeration.StatusAlreadyModerated {
		return ReplyAlreadyModerated, nil
	}
	return ReplyReported, nil
}

// autonomousClient acts as the bot itself so that the reporter stays anonymous.
func (r *reporter) autonomousClient(ctx context.Context, commandClient platform.Client) (platform.Client, error) {
	s := commandClient.Scope()
	inst, err := r.installations.Get(ctx, s.Location().Key())
	if err != nil {
		return nil, err
	}
	return r.factory.ForInstallation(s, inst.APIGateway), nil
}
