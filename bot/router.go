// Package bot dispatches inbound platform events to the ticket registry and
// the question sequencer.
package bot

import (
	"errors"
	"fmt"

	"github.com/snakecharmers/boabot/interview"
	"github.com/snakecharmers/boabot/pkg/log"
	"github.com/snakecharmers/boabot/platform"
	"github.com/snakecharmers/boabot/ticket"
)

const (
	IntakeMessage = "Click the button below to request a BOA:"
	IntakeLabel   = "Request a BOA"

	msgGreeting      = "Hello! You requested a BOA. How can I help you?"
	msgDMSent        = "I've sent you a DM!"
	msgNoDM          = "I couldn't send you a DM. Please make sure you have DMs enabled."
	msgAlreadyActive = "You already have an active request."
	msgStillQueued   = "Hello! Your BOA request is still in the queue (position %d)."
	msgTryAgain      = "Something went wrong, please try again."
	msgCancelDMOnly  = "You can only use this command in a DM with the bot."
	msgNoOpenTicket  = "You do not have an open BOA request."
	msgCancelled     = "Your BOA request has been cancelled."
)

type Router struct {
	messenger platform.Messenger
	registry  *ticket.Registry
	sequencer *interview.Sequencer
}

func New(messenger platform.Messenger, registry *ticket.Registry, sequencer *interview.Sequencer) *Router {
	return &Router{
		messenger: messenger,
		registry:  registry,
		sequencer: sequencer,
	}
}

// Start posts the intake affordance into the configured channel unless one is
// already on record. Failures are logged and the process continues without a
// posted affordance.
func (r *Router) Start(channelID int64) {
	if channelID == 0 {
		return
	}
	if err := r.messenger.EnsureIntake(channelID, IntakeMessage, IntakeLabel, interview.IntakeControlID); err != nil {
		log.Error("ensure intake message in channel %v: %v", channelID, err)
	}
}

// HandleInteraction decodes an element activation and routes it. Unparsable
// identifiers are dropped: they come from stale or foreign elements.
func (r *Router) HandleInteraction(i platform.Interaction) {
	c, ok := interview.ParseControl(i.ControlID)
	if !ok {
		return
	}
	if c.Kind == interview.ControlIntake {
		r.handleIntake(i)
		return
	}
	if err := r.sequencer.HandleControl(c, i); err != nil {
		log.Error("handle control %v from user %v: %v", i.ControlID, i.UserID, err)
	}
}

func (r *Router) handleIntake(i platform.Interaction) {
	_, err := r.registry.Create(i.UserID)
	if err != nil {
		var exists *ticket.AlreadyExistsError
		if errors.As(err, &exists) {
			_, position := r.registry.Position(i.UserID)
			if err := r.messenger.SendPrivate(i.UserID, fmt.Sprintf(msgStillQueued, position+1)); err != nil {
				log.Warn("queue notice to user %v: %v", i.UserID, err)
			}
			r.respond(i, msgAlreadyActive)
			return
		}
		log.Error("create ticket for user %v: %v", i.UserID, err)
		r.respond(i, msgTryAgain)
		return
	}
	if err := r.messenger.SendPrivate(i.UserID, msgGreeting); err != nil {
		// the interview cannot start while the user is unreachable; remove
		// the ticket again so pressing the button stays a cheap retry
		log.Warn("greeting to user %v failed, rolling back ticket: %v", i.UserID, err)
		if _, rerr := r.registry.Remove(i.UserID); rerr != nil {
			log.Error("roll back ticket for user %v: %v", i.UserID, rerr)
		}
		r.respond(i, msgNoDM)
		return
	}
	r.respond(i, msgDMSent)
	log.Info("user %v requested a BOA", i.UserID)
	if err := r.sequencer.Advance(i.UserID); err != nil {
		log.Error("start interview for user %v: %v", i.UserID, err)
	}
}

// HandleCancel processes an explicit cancel request and returns the reply to
// show the user. Cancelling is only valid in the private channel and only
// ever touches the caller's own ticket.
func (r *Router) HandleCancel(userID string, private bool) string {
	if !private {
		return msgCancelDMOnly
	}
	if t := r.registry.FindOpen(userID); t == nil {
		return msgNoOpenTicket
	}
	if _, err := r.registry.Remove(userID); err != nil {
		log.Error("cancel ticket for user %v: %v", userID, err)
		return msgTryAgain
	}
	r.sequencer.Abort(userID)
	return msgCancelled
}

// HandleMessage forwards a plain private message to the sequencer.
func (r *Router) HandleMessage(userID string, text string) {
	if err := r.sequencer.HandleMessage(userID, text); err != nil {
		log.Error("handle message from user %v: %v", userID, err)
	}
}

func (r *Router) respond(i platform.Interaction, text string) {
	if err := r.messenger.Respond(i, text); err != nil {
		log.Warn("respond to user %v: %v", i.UserID, err)
	}
}
