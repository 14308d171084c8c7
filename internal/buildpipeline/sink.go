package buildpipeline

// ChannelSink forwards events into a channel. The channel is owned by
// the consumer; closing it is the consumer's business.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// MultiSink fans one event out to several sinks.
type MultiSink []ProgressSink

func (m MultiSink) OnEvent(evt Event) {
	for _, s := range m {
		Emit(s, evt)
	}
}
