package probe

// TrackSource reads one decoded track. decoder names the fluxengine profile
// (ibm1440, mac800, amiga, ...). A failed read returns an empty slice; the
// source reports the failure itself.
type TrackSource interface {
	ReadTrack(decoder string, cylinder int, m Media) []byte
}

// Prober checks a disk for one family of formats.
type Prober interface {
	Name() string
	Probe(src TrackSource, m Media, log Sink) Verdict
}

// DefaultProbers returns the probes in the order they must run. Later probes
// assume the earlier ones found nothing.
func DefaultProbers() []Prober {
	return []Prober{BPB{}, Mac{}, Amiga{}, Commodore1541{}}
}

// Result is a verdict together with the probe that produced it.
type Result struct {
	Verdict
	Probe string `json:"probe,omitempty"`
}

// Classifier runs probers in order against a track source.
type Classifier struct {
	Source  TrackSource
	Probers []Prober
	Log     Sink
}

// NewClassifier returns a classifier using the default probe order. A nil
// log discards diagnostics.
func NewClassifier(src TrackSource, log Sink) *Classifier {
	if log == nil {
		log = NopSink{}
	}
	return &Classifier{Source: src, Probers: DefaultProbers(), Log: log}
}

// Result runs each prober until one identifies a format. If none does, the
// returned result is unidentified.
func (c *Classifier) Result(m Media) Result {
	log := c.Log
	if log == nil {
		log = NopSink{}
	}
	for _, p := range c.Probers {
		log.Debugf("Running %s probe", p.Name())
		if v := p.Probe(c.Source, m, log); v.Identified() {
			return Result{Verdict: v, Probe: p.Name()}
		}
	}
	return Result{}
}

// Classify is Result without the probe name.
func (c *Classifier) Classify(m Media) Verdict {
	return c.Result(m).Verdict
}
