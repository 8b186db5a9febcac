package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/config"
	"github.com/TomBelfast/AiPodcast/domain"
	"github.com/donovanhide/eventsource"
)

const DoneSignal = "[DONE]"
const MaxRetries = 3

const GenerationProviderName = "OpenAI"

type chatGptRequest struct {
	Stream         bool              `json:"stream"`
	Model          string            `json:"model"`
	Messages       []chatGptMessage  `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptChunkBody struct {
	Choices []chatGptResponseChoice `json:"choices"`
}

type chatGptResponseChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type gptDialogueStreamer struct {
	logger     outbound.LoggerPort
	gptConfig  *config.GptConfig
	workerPool outbound.TaskDispatcher
}

func NewGptDialogueStreamer(gptConfig *config.GptConfig, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.DialogueStreamerPort {
	return &gptDialogueStreamer{
		logger:     logger,
		gptConfig:  gptConfig,
		workerPool: workerPool,
	}
}

func (s *gptDialogueStreamer) Stream(ctx context.Context, streamReq outbound.StreamDialogueRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 5)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()
		req, err := s.createRequest(newCtx, streamReq)
		if err != nil {
			s.logger.Error(err, "Failed to create HTTP request for dialogue stream")
			errCh <- ClassifyProviderError(GenerationProviderName, err)
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", req)
		if err != nil {
			s.logger.Error(err, "Failed to subscribe to dialogue stream")
			errCh <- ClassifyProviderError(GenerationProviderName, err)
			return
		}
		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				if ev.Data() != DoneSignal {
					payload, err := s.extractPayload(ev)
					if err != nil {
						errCh <- ClassifyProviderError(GenerationProviderName, err)
						cancel()
						return
					}
					out <- payload
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					s.logger.Info("Dialogue stream closed")
					return
				} else if retryCount < MaxRetries {
					s.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
						"retry_count": retryCount})
					retryCount++
					continue
				}
				s.logger.Error(err, "Error occurred during streaming, max retries reached")
				errCh <- ClassifyProviderError(GenerationProviderName, err)
				cancel()
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit task to worker pool")
		errCh <- err
	}

	return out, errCh
}

func (s *gptDialogueStreamer) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody chatGptChunkBody
	err := json.Unmarshal([]byte(event.Data()), &chunkBody)
	if err != nil {
		s.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}
	if len(chunkBody.Choices) == 0 {
		return "", nil
	}

	return chunkBody.Choices[0].Delta.Content, nil
}

func (s *gptDialogueStreamer) createRequest(ctx context.Context, streamReq outbound.StreamDialogueRequest) (*http.Request, error) {
	title := streamReq.Title
	if title == "" {
		title = domain.DefaultTitle
	}

	promptMessage := chatGptMessage{
		Role: "system",
		Content: fmt.Sprintf("Rewrite the following content as a lively podcast conversation between two hosts, "+
			"titled %q, in %s.\n"+
			"Respond with a single JSON object of the shape "+
			`{"conversation":[{"speaker":"Speaker1","text":"..."},{"speaker":"Speaker2","text":"..."}]}`+".\n"+
			"Rules:\n"+
			"- The speaker field must be exactly Speaker1 or Speaker2\n"+
			"- Speaker1 opens the conversation and the hosts alternate naturally\n"+
			"- Every utterance must be plain spoken text with no markup\n"+
			"- Cover the whole content, do not summarize it away\n"+
			"Content:\n%s", title, domain.LanguageName(streamReq.Language), streamReq.Content),
	}

	promptReq := chatGptRequest{
		Stream:         true,
		Model:          s.gptConfig.Model,
		Messages:       []chatGptMessage{promptMessage},
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.gptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
