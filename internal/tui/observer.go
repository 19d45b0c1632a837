package tui

// ChannelObserver adapts domain.StateObserver to a channel for Bubble Tea.
// The channel carries no data; receivers read a fresh store snapshot.
type ChannelObserver struct {
	ch chan<- struct{}
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- struct{}) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnStateChange signals the channel (non-blocking if a signal is pending).
func (o *ChannelObserver) OnStateChange() {
	select {
	case o.ch <- struct{}{}:
	default: // A pending signal already covers this change
	}
}
