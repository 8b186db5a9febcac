package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/TomBelfast/AiPodcast/application/ports/inbound"
	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/application/services"
	"github.com/TomBelfast/AiPodcast/domain"
	"github.com/TomBelfast/AiPodcast/infrastructure/gin_interface/dto"
	"github.com/TomBelfast/AiPodcast/middleware"
	"github.com/gin-gonic/gin"
)

type PodcastStageController interface {
	Receive(c *gin.Context)
	Process(c *gin.Context)
	Approve(c *gin.Context)
	Download(c *gin.Context)
	GenerateStream(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type podcastStageController struct {
	logger     outbound.LoggerPort
	generator  inbound.ConversationGeneratorPort
	assembler  inbound.PodcastAssemblerPort
	localStore outbound.LocalArtifactStorePort
	baseURL    string
}

func NewPodcastStageController(
	logger outbound.LoggerPort,
	generator inbound.ConversationGeneratorPort,
	assembler inbound.PodcastAssemblerPort,
	localStore outbound.LocalArtifactStorePort,
	baseURL string,
) PodcastStageController {
	return &podcastStageController{
		logger:     logger,
		generator:  generator,
		assembler:  assembler,
		localStore: localStore,
		baseURL:    baseURL,
	}
}

// Receive mints the job id and echoes the payload back wrapped with the next
// stage to call. No generation happens here; the caller is the sole carrier
// of pipeline state.
func (p *podcastStageController) Receive(c *gin.Context) {
	var req dto.ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "transcript is required"})
		return
	}

	jobID := domain.NewJobID()
	p.logger.InfoWithFields("Received transcript, job created", map[string]interface{}{
		"job_id": jobID,
	})

	body := map[string]interface{}{
		"jobId":      jobID,
		"transcript": req.Transcript,
		"title":      req.Title,
		"language":   req.Language,
	}
	if req.Metadata != nil {
		body["metadata"] = req.Metadata
	}

	c.JSON(http.StatusOK, dto.ReceiveResponse{
		Success: true,
		JobID:   jobID,
		NextStep: dto.NextStep{
			URL:    p.baseURL + "/api/podcast/process",
			Method: http.MethodPost,
			Body:   body,
		},
	})
}

// Process runs the transcript through conversation generation and returns
// the completed dialogue. Streaming stays internal here: the stage answers
// request/response once the final snapshot arrives.
func (p *podcastStageController) Process(c *gin.Context) {
	var req dto.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "jobId and transcript are required"})
		return
	}

	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	conversation, err := p.awaitConversation(newCtx, inbound.GenerateConversationParams{
		Content:  req.Transcript,
		Title:    req.Title,
		Language: req.Language,
	})
	if err != nil {
		p.logger.ErrorWithFields(err, "Conversation generation failed", map[string]interface{}{
			"job_id": req.JobID,
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	title := req.Title
	if title == "" {
		title = domain.DefaultTitle
	}

	c.JSON(http.StatusOK, dto.ProcessResponse{
		Success:      true,
		JobID:        req.JobID,
		Conversation: dto.FromDialogue(conversation),
		Title:        title,
		ApprovalURL:  p.baseURL + "/api/podcast/approve",
	})
}

// Approve synthesizes the (possibly caller-edited) dialogue, always persists
// the artifact locally and mirrors it to object storage only on request,
// never failing the stage on mirror errors.
func (p *podcastStageController) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "jobId and conversation are required"})
		return
	}
	if len(req.Conversation) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "conversation must not be empty"})
		return
	}

	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	result, err := p.assembler.Assemble(newCtx, inbound.AssemblePodcastParams{
		JobID:        req.JobID,
		Title:        req.Title,
		Conversation: dto.ToDialogue(req.Conversation),
		Voices:       domain.NewVoiceAssignment(req.Voice1, req.Voice2),
		UploadRemote: req.UploadToMinIO,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyConversation) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: err.Error()})
			return
		}
		p.logger.ErrorWithFields(err, "Podcast assembly failed", map[string]interface{}{
			"job_id": req.JobID,
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	var minioURL *string
	if result.RemoteURL != "" {
		minioURL = &result.RemoteURL
	}

	c.JSON(http.StatusOK, dto.ApproveResponse{
		Success:     true,
		JobID:       req.JobID,
		DownloadURL: fmt.Sprintf("%s/api/podcast/download/%s", p.baseURL, req.JobID),
		MinioURL:    minioURL,
		Filename:    result.Filename,
	})
}

// Download streams back the first locally stored artifact matching the job id.
func (p *podcastStageController) Download(c *gin.Context) {
	jobID := c.Param("jobId")

	path, size, err := p.localStore.Resolve(jobID)
	if err != nil {
		if errors.Is(err, outbound.ErrArtifactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found for this job ID"})
			return
		}
		p.logger.Error(err, "Failed to resolve local artifact")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	p.logger.DebugWithFields("Serving artifact", map[string]interface{}{
		"job_id": jobID,
		"path":   path,
		"size":   size,
	})
	c.Header("Content-Type", "audio/mpeg")
	c.FileAttachment(path, filepath.Base(path))
}

// GenerateStream is the raw entry point: each dialogue refinement goes out as
// one JSON line, and a provider failure is delivered as a terminal in-stream
// event rather than an HTTP error, so a consumer mid-read can tell "failed"
// from "done".
func (p *podcastStageController) GenerateStream(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "content is required"})
		return
	}

	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	outCh, errCh := p.generator.Generate(newCtx, inbound.GenerateConversationParams{
		Content:  req.Content,
		Title:    req.Title,
		Language: req.Language,
	})

	var final domain.Dialogue
	for {
		select {
		case err, ok := <-errCh:
			if ok {
				p.writeStreamEvent(c, dto.StreamEvent{Type: "error", Error: err.Error()})
				return
			}
		case snapshot, ok := <-outCh:
			if !ok {
				if err := p.drainError(errCh); err != nil {
					p.writeStreamEvent(c, dto.StreamEvent{Type: "error", Error: err.Error()})
					return
				}
				p.writeStreamEvent(c, dto.StreamEvent{Type: "done", Conversation: dto.FromDialogue(final)})
				return
			}
			final = snapshot
			p.writeStreamEvent(c, dto.StreamEvent{
				Type:  "partial",
				Turns: len(snapshot),
			})
		}
	}
}

// awaitConversation consumes the refinement stream to completion and returns
// the authoritative final dialogue.
func (p *podcastStageController) awaitConversation(ctx context.Context, params inbound.GenerateConversationParams) (domain.Dialogue, error) {
	outCh, errCh := p.generator.Generate(ctx, params)

	var final domain.Dialogue
	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return nil, err
			}
		case snapshot, ok := <-outCh:
			if !ok {
				if err := p.drainError(errCh); err != nil {
					return nil, err
				}
				if len(final) == 0 {
					return nil, fmt.Errorf("generation produced no conversation")
				}
				return final, nil
			}
			final = snapshot
		}
	}
}

// drainError reads the merged error channel to its close once the dialogue
// channel is done, catching a terminal error that raced the close.
func (p *podcastStageController) drainError(errCh <-chan error) error {
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *podcastStageController) writeStreamEvent(c *gin.Context, event dto.StreamEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(err, "Failed to marshal stream event")
		return
	}
	if _, err := c.Writer.Write(append(payload, '\n')); err != nil {
		p.logger.Error(err, "Failed to write stream event")
		return
	}
	c.Writer.Flush()
}

func (p *podcastStageController) RegisterRoutes(g *gin.Engine) {
	api := g.Group("/api/podcast")
	api.POST("/receive", p.Receive)
	api.POST("/process", p.Process)
	api.POST("/approve", p.Approve)
	api.GET("/download/:jobId", p.Download)
	api.POST("/generate", middleware.NDJSONMiddleware(), p.GenerateStream)
}
