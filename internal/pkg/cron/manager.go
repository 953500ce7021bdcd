package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine *cron.Cron
	jobs   []scheduled
}

type scheduled struct {
	name string
	spec string
	job  cron.Job
}

func NewCronManager() *Manager {
	return &Manager{
		engine: cron.New(cron.WithSeconds()),
	}
}

// Add queues job under spec; a blank spec disables it.
func (s *Manager) Add(name, spec string, job cron.Job) {
	if spec == "" || job == nil {
		log.Info("Cron job disabled", "job", name)
		return
	}
	s.jobs = append(s.jobs, scheduled{name: name, spec: spec, job: job})
}

// RegisterJobs hands every queued job to the engine.
func (s *Manager) RegisterJobs() error {
	for _, j := range s.jobs {
		if _, err := s.engine.AddJob(j.spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(j.job)); err != nil {
			return err
		}
		log.Info("Cron job registered", "job", j.name, "spec", j.spec)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

// Run registers the queued jobs and starts the engine.
func (s *Manager) Run() error {
	if err := s.RegisterJobs(); err != nil {
		return err
	}
	s.Start()
	return nil
}

// Stop waits for running jobs to finish.
func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
