package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/TomBelfast/AiPodcast/application/ports/inbound"
	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/channel_utils"
	"github.com/TomBelfast/AiPodcast/domain"
)

type generatedConversation struct {
	Conversation domain.Dialogue `json:"conversation"`
}

type conversationGenerator struct {
	logger     outbound.LoggerPort
	streamer   outbound.DialogueStreamerPort
	workerPool outbound.TaskDispatcher
	turnRegexp *regexp.Regexp
}

func NewConversationGenerator(logger outbound.LoggerPort, streamer outbound.DialogueStreamerPort,
	workerPool outbound.TaskDispatcher) inbound.ConversationGeneratorPort {
	return &conversationGenerator{
		logger:     logger,
		streamer:   streamer,
		workerPool: workerPool,
		turnRegexp: regexp.MustCompile(`\{\s*"speaker"\s*:\s*"[^"]*"\s*,\s*"text"\s*:\s*"(?:[^"\\]|\\.)*"\s*}`),
	}
}

func (g *conversationGenerator) Generate(ctx context.Context, params inbound.GenerateConversationParams) (<-chan domain.Dialogue, <-chan error) {
	out := make(chan domain.Dialogue)
	parseErrCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	tokenCh, streamErrCh := g.streamer.Stream(newCtx, outbound.StreamDialogueRequest{
		Content:  params.Content,
		Title:    params.Title,
		Language: domain.ResolveLanguage(params.Language),
	})

	errCh, err := channel_utils.MergeChannels[error](g.workerPool, streamErrCh, parseErrCh)
	if err != nil {
		g.logger.Error(err, "Failed to merge generation error channels")
		cancel()
		close(out)
		parseErrCh <- err
		close(parseErrCh)
		return out, parseErrCh
	}

	err = g.workerPool.Submit(func() {
		defer close(out)
		defer close(parseErrCh)
		defer cancel()

		var builder strings.Builder
		emitted := 0

		for {
			select {
			case <-newCtx.Done():
				return
			case token, ok := <-tokenCh:
				if !ok {
					g.finish(newCtx, builder.String(), emitted, out, parseErrCh)
					return
				}
				builder.WriteString(token)
				turns := g.extractTurns(builder.String())
				if len(turns) > emitted {
					emitted = len(turns)
					select {
					case out <- turns:
					case <-newCtx.Done():
						return
					}
				}
			}
		}
	})
	if err != nil {
		g.logger.Error(err, "Failed to submit generation task to worker pool")
		cancel()
		parseErrCh <- err
		close(parseErrCh)
		close(out)
	}

	return out, errCh
}

// finish emits the authoritative dialogue: the strict parse of the complete
// buffer when the model closed its JSON properly, otherwise the turns
// recovered incrementally, and a parse error only when nothing was recovered.
func (g *conversationGenerator) finish(ctx context.Context, buffer string, emitted int,
	out chan<- domain.Dialogue, parseErrCh chan<- error) {
	var parsed generatedConversation
	if err := json.Unmarshal([]byte(buffer), &parsed); err == nil && len(parsed.Conversation) > 0 {
		select {
		case out <- parsed.Conversation:
		case <-ctx.Done():
		}
		return
	}

	turns := g.extractTurns(buffer)
	if len(turns) > 0 {
		g.logger.WarnWithFields("Generation output was not well-formed JSON, using recovered turns", map[string]interface{}{
			"recovered_turns": len(turns),
		})
		if len(turns) > emitted {
			select {
			case out <- turns:
			case <-ctx.Done():
			}
		}
		return
	}

	if strings.TrimSpace(buffer) == "" {
		// The streamer already reported why the stream died; nothing to add.
		return
	}

	err := json.Unmarshal([]byte(buffer), &parsed)
	if err == nil {
		err = fmt.Errorf("generation output contained no dialogue turns")
	}
	g.logger.Error(err, "Failed to parse generated conversation")
	parseErrCh <- err
}

func (g *conversationGenerator) extractTurns(buffer string) domain.Dialogue {
	matches := g.turnRegexp.FindAllString(buffer, -1)
	turns := make(domain.Dialogue, 0, len(matches))
	for _, match := range matches {
		var turn domain.DialogueTurn
		if err := json.Unmarshal([]byte(match), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns
}
