package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/TrustMod/pkg/app/policy"
	"github.com/NeuralTrust/TrustMod/pkg/app/report"
	domainModeration "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	domainPolicy "github.com/NeuralTrust/TrustMod/pkg/domain/policy"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

var ErrCommandNotFound = errors.New("command not found")

const (
	ReplyPaused        = "Moderation has been paused in this chat"
	ReplyResumed       = "Moderation has been resumed in this chat"
	ReplyNoExplanation = "Sorry but I could not find any explanation for this message"
	ReplyNoOffenders   = "Nobody has been moderated in this chat yet"
	ReplyMissingMsgID  = "You must supply the id of the message you want explained"
)

// Response is rendered by the platform as a message from the bot.
type Response struct {
	Text               string `json:"text"`
	Ephemeral          bool   `json:"ephemeral"`
	BlockLevelMarkdown bool   `json:"block_level_markdown"`
}

func ephemeral(text string) Response {
	return Response{Text: text, Ephemeral: true}
}

//go:generate mockery --name=Dispatcher --dir=. --output=./mocks --filename=dispatcher_mock.go --case=underscore --with-expecter
type Dispatcher interface {
	Execute(ctx context.Context, client platform.Client, claims *jwt.CommandClaims) (Response, error)
}

type invocation struct {
	client platform.Client
	claims *jwt.CommandClaims
	log    *logrus.Entry
}

type handlerFunc func(ctx context.Context, inv invocation) (Response, error)

type command struct {
	handle handlerFunc
	// publicOnly commands read or change the chat policy.
	publicOnly bool
}

type dispatcher struct {
	logger   *logrus.Logger
	policies policy.Service
	ledger   domainModeration.Repository
	reporter report.Reporter
	commands map[string]command
}

func NewDispatcher(
	logger *logrus.Logger,
	policies policy.Service,
	ledger domainModeration.Repository,
	reporter report.Reporter,
) Dispatcher {
	d := &dispatcher{
		logger:   logger,
		policies: policies,
		ledger:   ledger,
		reporter: reporter,
	}
	d.commands = map[string]command{
		"help":          {handle: d.help},
		"pause":         {handle: d.pause, publicOnly: true},
		"resume":        {handle: d.resume, publicOnly: true},
		"status":        {handle: d.status, publicOnly: true},
		"rules":         {handle: d.rules, publicOnly: true},
		"action":        {handle: d.action, publicOnly: true},
		"threshold":     {handle: d.threshold, publicOnly: true},
		"explanation":   {handle: d.explanation, publicOnly: true},
		"explain":       {handle: d.explain},
		"top_offenders": {handle: d.topOffenders},
		"report":        {handle: d.report},
	}
	return d
}

func (d *dispatcher) Execute(ctx context.Context, client platform.Client, claims *jwt.CommandClaims) (Response, error) {
	cmd, ok := d.commands[claims.Command.Name]
	if !ok {
		return Response{}, fmt.Errorf("%w: %s", ErrCommandNotFound, claims.Command.Name)
	}
	inv := invocation{
		client: client,
		claims: claims,
		log: d.logger.WithFields(logrus.Fields{
			"command":   claims.Command.Name,
			"scope":     claims.Scope.String(),
			"initiator": claims.Command.Initiator,
		}),
	}
	if cmd.publicOnly {
		summary, err := client.ChatSummary(ctx)
		if err != nil {
			inv.log.WithError(err).Warn("failed to load chat summary")
		}
		if err != nil || !summary.IsPublicGroup() {
			return ephemeral(report.ReplyPrivateChat), nil
		}
	}
	resp, err := cmd.handle(ctx, inv)
	if err != nil {
		inv.log.WithError(err).Error("command failed")
		return Response{}, err
	}
	inv.log.Debug("command executed")
	return resp, nil
}

func decodeArgs(args map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

func (d *dispatcher) help(_ context.Context, _ invocation) (Response, error) {
	return Response{Text: HelpText(), Ephemeral: true, BlockLevelMarkdown: true}, nil
}

func (d *dispatcher) setModerating(ctx context.Context, inv invocation, moderating bool, reply string) (Response, error) {
	if _, err := d.policies.Update(ctx, inv.claims.Scope, domainPolicy.Update{Moderating: &moderating}); err != nil {
		return Response{}, err
	}
	return ephemeral(reply), nil
}

func (d *dispatcher) pause(ctx context.Context, inv invocation) (Response, error) {
	return d.setModerating(ctx, inv, false, ReplyPaused)
}

func (d *dispatcher) resume(ctx context.Context, inv invocation) (Response, error) {
	return d.setModerating(ctx, inv, true, ReplyResumed)
}

func (d *dispatcher) status(ctx context.Context, inv invocation) (Response, error) {
	p, err := d.policies.Get(ctx, inv.claims.Scope)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: p.Describe(), Ephemeral: true, BlockLevelMarkdown: true}, nil
}

// update applies a policy change. Validation failures go back to the member
// as the reply instead of failing the command.
func (d *dispatcher) update(ctx context.Context, inv invocation, u domainPolicy.Update) (Response, error) {
	p, err := d.policies.Update(ctx, inv.claims.Scope, u)
	if err != nil {
		if isValidationError(err) {
			return ephemeral(capitalise(err.Error())), nil
		}
		return Response{}, err
	}
	return Response{Text: p.Describe(), Ephemeral: true, BlockLevelMarkdown: true}, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, domainPolicy.ErrInvalidRules) ||
		errors.Is(err, domainPolicy.ErrInvalidAction) ||
		errors.Is(err, domainPolicy.ErrInvalidExplanation) ||
		errors.Is(err, domainPolicy.ErrInvalidThreshold) ||
		errors.Is(err, domainPolicy.ErrEmptyReaction)
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func missingArg(name string) Response {
	return ephemeral(fmt.Sprintf("The %s argument is required", name))
}

func (d *dispatcher) rules(ctx context.Context, inv invocation) (Response, error) {
	var args struct {
		Rules *int `mapstructure:"rules"`
	}
	if err := decodeArgs(inv.claims.Command.Args, &args); err != nil || args.Rules == nil {
		return missingArg("rules"), nil
	}
	r, err := domainPolicy.RulesFromCode(*args.Rules)
	if err != nil {
		return ephemeral(capitalise(err.Error())), nil
	}
	return d.update(ctx, inv, domainPolicy.Update{Rules: &r})
}

func (d *dispatcher) action(ctx context.Context, inv invocation) (Response, error) {
	var args struct {
		Action   *int   `mapstructure:"action"`
		Reaction string `mapstructure:"reaction"`
	}
	if err := decodeArgs(inv.claims.Command.Args, &args); err != nil || args.Action == nil {
		return missingArg("action"), nil
	}
	a, err := domainPolicy.ActionFromCode(*args.Action, args.Reaction)
	if err != nil {
		return ephemeral(capitalise(err.Error())), nil
	}
	return d.update(ctx, inv, domainPolicy.Update{Action: a})
}

func (d *dispatcher) threshold(ctx context.Context, inv invocation) (Response, error) {
	var args struct {
		Threshold *float64 `mapstructure:"threshold"`
	}
	if err := decodeArgs(inv.claims.Command.Args, &args); err != nil || args.Threshold == nil {
		return missingArg("threshold"), nil
	}
	return d.update(ctx, inv, domainPolicy.Update{Threshold: args.Threshold})
}

func (d *dispatcher) explanation(ctx context.Context, inv invocation) (Response, error) {
	var args struct {
		Explanation *int `mapstructure:"explanation"`
	}
	if err := decodeArgs(inv.claims.Command.Args, &args); err != nil || args.Explanation == nil {
		return missingArg("explanation"), nil
	}
	e, err := domainPolicy.ExplanationFromCode(*args.Explanation)
	if err != nil {
		return ephemeral(capitalise(err.Error())), nil
	}
	return d.update(ctx, inv, domainPolicy.Update{Explanation: &e})
}

func (d *dispatcher) explain(ctx context.Context, inv invocation) (Response, error) {
	var args struct {
		MessageID string `mapstructure:"message_id"`
	}
	if err := decodeArgs(inv.claims.Command.Args, &args); err != nil || strings.TrimSpace(args.MessageID) == "" {
		return ephemeral(ReplyMissingMsgID), nil
	}
	reason, found, err := d.ledger.LoadReason(ctx, inv.claims.Scope, strings.TrimSpace(args.MessageID))
	if err != nil {
		return Response{}, fmt.Errorf("failed to load moderation reason: %w", err)
	}
	if !found || reason == "" {
		return ephemeral(ReplyNoExplanation), nil
	}
	return ephemeral(reason), nil
}

func (d *dispatcher) topOffenders(ctx context.Context, inv invocation) (Response, error) {
	offenders, err := d.ledger.TopOffenders(ctx, inv.claims.Scope, domainModeration.DefaultTopOffendersLimit)
	if err != nil {
		return Response{}, fmt.Errorf("failed to load top offenders: %w", err)
	}
	if len(offenders) == 0 {
		return ephemeral(ReplyNoOffenders), nil
	}
	lines := make([]string, 0, len(offenders))
	for _, o := range offenders {
		lines = append(lines, fmt.Sprintf("@UserId(%s)  **%d**", o.SenderID, o.Count))
	}
	return ephemeral(strings.Join(lines, "\n")), nil
}

func (d *dispatcher) report(ctx context.Context, inv invocation) (Response, error) {
	var args struct {
		MessageURL string `mapstructure:"message_url"`
	}
	_ = decodeArgs(inv.claims.Command.Args, &args)
	reply, err := d.reporter.Report(ctx, report.Request{
		CommandClient: inv.client,
		Initiator:     inv.claims.Command.Initiator,
		MessageURL:    strings.TrimSpace(args.MessageURL),
	})
	if err != nil {
		return Response{}, err
	}
	return ephemeral(reply), nil
}
