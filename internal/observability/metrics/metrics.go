package metrics

import "github.com/prometheus/client_golang/prometheus"

// SiteMetrics exposes counters/histograms for brand resolution and the
// lead funnel.
type SiteMetrics struct {
	brandResolutions *prometheus.CounterVec
	brandSwitches    *prometheus.CounterVec
	funnelSteps      *prometheus.CounterVec
	leadsTotal       *prometheus.CounterVec
	detectLatency    *prometheus.HistogramVec
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		brandResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brandsite",
			Subsystem: "brands",
			Name:      "resolutions_total",
			Help:      "Total brand resolutions by input kind",
		}, []string{"brand", "source"}),
		brandSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brandsite",
			Subsystem: "brands",
			Name:      "switches_total",
			Help:      "Total brand switches by cause",
		}, []string{"to_brand", "cause"}),
		funnelSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brandsite",
			Subsystem: "funnel",
			Name:      "step_completions_total",
			Help:      "Total funnel step completions",
		}, []string{"step"}),
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brandsite",
			Subsystem: "funnel",
			Name:      "leads_total",
			Help:      "Total lead submissions by outcome",
		}, []string{"brand", "status"}),
		detectLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "brandsite",
			Subsystem: "geo",
			Name:      "detect_latency_seconds",
			Help:      "Latency of location detection",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.brandResolutions, m.brandSwitches, m.funnelSteps, m.leadsTotal, m.detectLatency)
	return m
}

func (m *SiteMetrics) ObserveResolution(brand, source string) {
	if m == nil {
		return
	}
	m.brandResolutions.WithLabelValues(brand, source).Inc()
}

func (m *SiteMetrics) ObserveSwitch(toBrand, cause string) {
	if m == nil {
		return
	}
	m.brandSwitches.WithLabelValues(toBrand, cause).Inc()
}

func (m *SiteMetrics) ObserveStep(step string) {
	if m == nil {
		return
	}
	m.funnelSteps.WithLabelValues(step).Inc()
}

func (m *SiteMetrics) ObserveLead(brand, status string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(brand, status).Inc()
}

func (m *SiteMetrics) ObserveDetectLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.detectLatency.WithLabelValues(outcome).Observe(seconds)
}
