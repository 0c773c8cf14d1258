// Package coordinator applies user-initiated mutations to the local item
// state. Votes and saves are optimistic: the local change lands before
// the remote call resolves, and a failed call leaves it in place with a
// notification (the periodic focus refetch is what reconciles drift).
// Add, edit and delete are pessimistic: local state only changes after
// the server confirms.
package coordinator

import (
	"context"
	"errors"
	"strings"

	"promptbase/client/feed"
	"promptbase/client/gateway"
)

// refetchLimit caps how many prompts a focus refetch pulls as the
// authoritative set.
const refetchLimit = 500

// Notifier surfaces transient user-facing notifications. Every failure in
// the taxonomy ends here; none are fatal.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Gateway is the remote surface the coordinator mutates through.
type Gateway interface {
	SearchPrompts(ctx context.Context, f gateway.SearchFilters) (gateway.PromptPage, error)
	CreatePrompt(ctx context.Context, in gateway.PromptInput) (gateway.Prompt, error)
	UpdatePrompt(ctx context.Context, id string, in gateway.PromptInput) (gateway.Prompt, error)
	DeletePrompt(ctx context.Context, id string) error
	UpsertVote(ctx context.Context, promptID, voteType string) (gateway.VoteResult, error)
	DeleteVote(ctx context.Context, promptID string) (int, error)
	SavePrompt(ctx context.Context, promptID, folderName, notes string) (gateway.SavedRecord, error)
	UnsavePrompt(ctx context.Context, promptID string) error
	MyVotes(ctx context.Context) (map[string]string, error)
	MySavedPrompts(ctx context.Context) ([]gateway.SavedPromptDetails, error)
}

// AdminGate guards the admin-only mutations.
type AdminGate interface {
	IsAdmin() bool
}

// Coordinator owns the authoritative prompt set and the derived feed.
// It is single-owner state: all methods must be called from one
// goroutine, mirroring the event-loop model it reimplements.
type Coordinator struct {
	gw     Gateway
	gate   AdminGate
	notify Notifier

	signedIn bool

	prompts []gateway.Prompt
	votes   map[string]string
	saved   map[string]bool

	term     string
	category string
	feed     *feed.Feed[gateway.Prompt]
}

func New(gw Gateway, gate AdminGate, notify Notifier) *Coordinator {
	return &Coordinator{
		gw:     gw,
		gate:   gate,
		notify: notify,
		votes:  make(map[string]string),
		saved:  make(map[string]bool),
		feed:   feed.New[gateway.Prompt](),
	}
}

// SetSignedIn records whether a user session is present. Vote and save
// are refused without one.
func (co *Coordinator) SetSignedIn(signedIn bool) {
	co.signedIn = signedIn
}

// SetPrompts seeds the authoritative set, e.g. from server-rendered
// initial data.
func (co *Coordinator) SetPrompts(prompts []gateway.Prompt) {
	co.prompts = prompts
	co.recompute()
}

// SetSearch updates the search term and recomputes the views.
func (co *Coordinator) SetSearch(term string) {
	co.term = term
	co.recompute()
}

// SetCategory updates the category filter and recomputes the views.
func (co *Coordinator) SetCategory(category string) {
	co.category = category
	co.recompute()
}

func (co *Coordinator) recompute() {
	co.feed.Update(co.prompts, co.term, co.category)
}

// Prompts returns the authoritative set.
func (co *Coordinator) Prompts() []gateway.Prompt { return co.prompts }

// Filtered returns the current filtered view.
func (co *Coordinator) Filtered() []gateway.Prompt { return co.feed.Filtered() }

// Displayed returns the current displayed view.
func (co *Coordinator) Displayed() []gateway.Prompt { return co.feed.Displayed() }

// HandleScroll forwards a scroll event to the feed.
func (co *Coordinator) HandleScroll(scrollTop, scrollHeight, clientHeight float64) feed.ScrollEffect {
	return co.feed.HandleScroll(scrollTop, scrollHeight, clientHeight)
}

// VoteFor returns the user's current vote direction on a prompt, or "".
func (co *Coordinator) VoteFor(promptID string) string { return co.votes[promptID] }

// IsSaved reports whether the prompt is in the user's saved set.
func (co *Coordinator) IsSaved(promptID string) bool { return co.saved[promptID] }

func voteValue(direction string) int {
	switch direction {
	case "up":
		return 1
	case "down":
		return -1
	default:
		return 0
	}
}

func (co *Coordinator) findPrompt(promptID string) *gateway.Prompt {
	for i := range co.prompts {
		if co.prompts[i].ID == promptID {
			return &co.prompts[i]
		}
	}
	return nil
}

// Vote casts or redirects a vote. The local counter moves by the signed
// delta between the old and new direction (none→up is +1, down→up is +2,
// same direction is +0) before the call resolves; the upsert fires in
// every case. On success the server's recomputed counter wins.
func (co *Coordinator) Vote(ctx context.Context, promptID, direction string) {
	if !co.signedIn {
		co.notify.Error("Please sign in to vote")
		return
	}

	prev := co.votes[promptID]
	delta := voteValue(direction) - voteValue(prev)

	co.votes[promptID] = direction
	if delta != 0 {
		if p := co.findPrompt(promptID); p != nil {
			p.VoteCount += delta
		}
		co.recompute()
	}

	result, err := co.gw.UpsertVote(ctx, promptID, direction)
	if err != nil {
		// Keep the optimistic state; the next focus refetch reconciles.
		co.notify.Error("Failed to vote")
		return
	}
	if p := co.findPrompt(promptID); p != nil {
		p.VoteCount = result.VoteCount
	}
	co.recompute()
}

// Unvote removes the user's vote on a prompt.
func (co *Coordinator) Unvote(ctx context.Context, promptID string) {
	if !co.signedIn {
		co.notify.Error("Please sign in to vote")
		return
	}

	prev := co.votes[promptID]
	delete(co.votes, promptID)
	if delta := -voteValue(prev); delta != 0 {
		if p := co.findPrompt(promptID); p != nil {
			p.VoteCount += delta
		}
		co.recompute()
	}

	count, err := co.gw.DeleteVote(ctx, promptID)
	if err != nil {
		co.notify.Error("Failed to remove vote")
		return
	}
	if p := co.findPrompt(promptID); p != nil {
		p.VoteCount = count
	}
	co.recompute()
}

// Save adds a prompt to the saved set. Saving an already-saved prompt
// still issues the call; the server answers Conflict and the membership
// stays as it was. Unlike votes, the save response carries no counter,
// so the optimistic SaveCount stands until the next focus refetch.
func (co *Coordinator) Save(ctx context.Context, promptID, folderName, notes string) {
	if !co.signedIn {
		co.notify.Error("Please sign in to save prompts")
		return
	}

	if !co.saved[promptID] {
		co.saved[promptID] = true
		if p := co.findPrompt(promptID); p != nil {
			p.SaveCount++
		}
		co.recompute()
	}

	if _, err := co.gw.SavePrompt(ctx, promptID, folderName, notes); err != nil {
		var gerr *gateway.Error
		if errors.As(err, &gerr) && gerr.Kind == gateway.KindConflict {
			co.notify.Error("Prompt already saved")
		} else {
			co.notify.Error("Failed to save prompt")
		}
		return
	}
	co.notify.Success("Prompt saved!")
}

// Unsave removes a prompt from the saved set.
func (co *Coordinator) Unsave(ctx context.Context, promptID string) {
	if !co.signedIn {
		co.notify.Error("Please sign in to save prompts")
		return
	}

	if co.saved[promptID] {
		delete(co.saved, promptID)
		if p := co.findPrompt(promptID); p != nil {
			p.SaveCount--
		}
		co.recompute()
	}

	if err := co.gw.UnsavePrompt(ctx, promptID); err != nil {
		co.notify.Error("Failed to unsave prompt")
		return
	}
	co.notify.Success("Prompt removed from saved")
}

// AddPrompt creates a prompt. Admin-gated and pessimistic: nothing
// changes locally until the server returns the canonical row.
func (co *Coordinator) AddPrompt(ctx context.Context, in gateway.PromptInput) {
	if !co.gate.IsAdmin() {
		co.notify.Error("Admin access required")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		co.notify.Error("Title is required")
		return
	}

	created, err := co.gw.CreatePrompt(ctx, in)
	if err != nil {
		co.notify.Error("Failed to add prompt")
		return
	}

	co.prompts = append([]gateway.Prompt{created}, co.prompts...)
	co.recompute()
	co.notify.Success("Prompt added!")
}

// EditPrompt updates a prompt in place. Admin-gated and pessimistic.
func (co *Coordinator) EditPrompt(ctx context.Context, promptID string, in gateway.PromptInput) {
	if !co.gate.IsAdmin() {
		co.notify.Error("Admin access required")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		co.notify.Error("Title is required")
		return
	}

	updated, err := co.gw.UpdatePrompt(ctx, promptID, in)
	if err != nil {
		co.notify.Error("Failed to update prompt")
		return
	}

	if p := co.findPrompt(promptID); p != nil {
		*p = updated
	}
	co.recompute()
	co.notify.Success("Prompt updated!")
}

// DeletePrompt removes a prompt. Admin-gated and pessimistic.
func (co *Coordinator) DeletePrompt(ctx context.Context, promptID string) {
	if !co.gate.IsAdmin() {
		co.notify.Error("Admin access required")
		return
	}

	if err := co.gw.DeletePrompt(ctx, promptID); err != nil {
		co.notify.Error("Failed to delete prompt")
		return
	}

	kept := co.prompts[:0]
	for _, p := range co.prompts {
		if p.ID != promptID {
			kept = append(kept, p)
		}
	}
	co.prompts = kept
	delete(co.votes, promptID)
	delete(co.saved, promptID)
	co.recompute()
	co.notify.Success("Prompt deleted!")
}

// RefreshOnFocus unconditionally refetches the authoritative set and the
// user's votes and saves. There is no de-duplication of rapid calls; the
// last response wins.
func (co *Coordinator) RefreshOnFocus(ctx context.Context) {
	page, err := co.gw.SearchPrompts(ctx, gateway.SearchFilters{Limit: refetchLimit})
	if err != nil {
		co.notify.Error("Failed to refresh prompts")
		return
	}
	co.prompts = page.Prompts

	if co.signedIn {
		if votes, err := co.gw.MyVotes(ctx); err == nil {
			co.votes = votes
		}
		if saved, err := co.gw.MySavedPrompts(ctx); err == nil {
			co.saved = make(map[string]bool, len(saved))
			for _, row := range saved {
				co.saved[row.PromptID] = true
			}
		}
	}

	co.recompute()
}
