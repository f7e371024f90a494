package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/artem13815/icebreaker/pkg/profile"
)

// Result is what the pipeline hands to the HTTP layer.
type Result struct {
	IceBreakers   []string            `json:"ice_breakers"`
	Sources       []profile.Candidate `json:"sources"`
	ExecutionTime float64             `json:"execution_time"`
}

// UseCase: единая точка входа пайплайна: поиск, сбор профилей, генерация ice breakers.
// Никогда не завершается ошибкой: в худшем случае возвращает резервный набор.
type UseCase interface {
	RunPipeline(ctx context.Context, name string) Result
}

type service struct {
	loop  *Loop
	synth *Synthesizer
	log   *slog.Logger
}

func NewService(loop *Loop, synth *Synthesizer, log *slog.Logger) UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &service{loop: loop, synth: synth, log: log.With("module", "pipeline")}
}

func (s *service) RunPipeline(ctx context.Context, name string) Result {
	start := time.Now()
	out := s.loop.Run(ctx, name)
	sources := ConvertSources(out.Sources)
	iceBreakers := s.synth.Generate(ctx, name, out.Findings)

	elapsed := time.Since(start).Seconds()
	s.log.Info("pipeline done",
		"name", name,
		"ice_breakers", len(iceBreakers),
		"sources", len(sources),
		"stop", string(out.Stop),
		"execution_time", elapsed,
	)
	return Result{IceBreakers: iceBreakers, Sources: sources, ExecutionTime: elapsed}
}
