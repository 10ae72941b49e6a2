package tmuxtest

import (
	"fmt"

	"github.com/abhinav/tm/internal/tmux"
	"github.com/golang/mock/gomock"
)

// NewWindowRequestMatcher is a gomock matcher that matches
// tmux.NewWindowRequest objects by window name.
type NewWindowRequestMatcher struct {
	Name string
}

var _ gomock.Matcher = NewWindowRequestMatcher{}

func (m NewWindowRequestMatcher) String() string {
	return fmt.Sprintf("NewWindowRequest{Name: %q}", m.Name)
}

// Matches reports whether the provided NewWindowRequest matches.
func (m NewWindowRequestMatcher) Matches(x interface{}) bool {
	req, ok := x.(tmux.NewWindowRequest)
	if !ok {
		return false
	}

	return req.Name == m.Name
}

// SplitWindowRequestMatcher is a gomock matcher that matches
// tmux.SplitWindowRequest objects by target.
type SplitWindowRequestMatcher struct {
	Target string
}

var _ gomock.Matcher = SplitWindowRequestMatcher{}

func (m SplitWindowRequestMatcher) String() string {
	return fmt.Sprintf("SplitWindowRequest{Target: %q}", m.Target)
}

// Matches reports whether the provided SplitWindowRequest matches.
func (m SplitWindowRequestMatcher) Matches(x interface{}) bool {
	req, ok := x.(tmux.SplitWindowRequest)
	if !ok {
		return false
	}

	return req.Target == m.Target
}
