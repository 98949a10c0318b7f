package playback

import (
	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// position locates a media item inside the eligibility snapshot
type position struct {
	campaign int
	item     int
}

// Sequencer tracks where the rotation currently is and computes where
// it goes next. It owns no rendering concerns; the engine asks it for
// the current item, peeks at the next one for preloading, and advances
// it on timer expiry or media completion.
type Sequencer struct {
	campaigns []v1alpha1.Campaign
	pos       position
}

// NewSequencer builds a sequencer over an eligibility snapshot. The
// snapshot must be non-empty and contain only campaigns with media;
// FilterEligible guarantees both.
func NewSequencer(campaigns []v1alpha1.Campaign) (*Sequencer, error) {
	if len(campaigns) == 0 {
		return nil, ErrEmptyPlaylist
	}
	for _, c := range campaigns {
		if len(c.Items) == 0 {
			return nil, ErrEmptyPlaylist
		}
	}
	return &Sequencer{campaigns: campaigns}, nil
}

// Current returns the media item at the current position
func (s *Sequencer) Current() v1alpha1.MediaItem {
	return s.campaigns[s.pos.campaign].Items[s.pos.item]
}

// CurrentCampaign returns the campaign at the current position
func (s *Sequencer) CurrentCampaign() v1alpha1.Campaign {
	return s.campaigns[s.pos.campaign]
}

// PeekNext returns the item that will follow the current one, without
// moving the position. The engine preloads this item.
func (s *Sequencer) PeekNext() v1alpha1.MediaItem {
	n := s.next()
	return s.campaigns[n.campaign].Items[n.item]
}

// Advance moves the position to the item PeekNext reported
func (s *Sequencer) Advance() {
	s.pos = s.next()
}

// next computes the following position. Remaining items in the current
// campaign come first; a lone looping campaign restarts in place; and
// otherwise the rotation moves to the next campaign, wrapping at the
// end. The produced sequence is infinite.
func (s *Sequencer) next() position {
	cur := s.campaigns[s.pos.campaign]
	if s.pos.item+1 < len(cur.Items) {
		return position{campaign: s.pos.campaign, item: s.pos.item + 1}
	}
	if len(s.campaigns) == 1 && cur.Loop {
		return position{campaign: s.pos.campaign}
	}
	c := s.pos.campaign + 1
	if c >= len(s.campaigns) {
		c = 0
	}
	return position{campaign: c}
}

// SoloSingleItemLoop reports whether the rotation is a single looping
// campaign with exactly one item. The engine restarts the active
// buffer in place for this case instead of swapping buffers for a
// no-op advance.
func (s *Sequencer) SoloSingleItemLoop() bool {
	return len(s.campaigns) == 1 && len(s.campaigns[0].Items) == 1 && s.campaigns[0].Loop
}
