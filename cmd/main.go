package main

import (
	"fmt"
	"os"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/application/services"
	"github.com/TomBelfast/AiPodcast/config"
	"github.com/TomBelfast/AiPodcast/infrastructure/adapters"
	"github.com/TomBelfast/AiPodcast/infrastructure/gin_interface/controllers"
	mockproviders "github.com/TomBelfast/AiPodcast/mock"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on the environment")
	}

	serverConfig := config.GetServerConfig()

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	dialogueStreamer := buildDialogueStreamer(workerPool, zeroLogger)
	synthesizer := buildSynthesizer(contentFetcher, zeroLogger)

	conversationGenerator := services.NewConversationGenerator(zeroLogger, dialogueStreamer, workerPool)

	localStore := adapters.NewLocalArtifactStore(serverConfig.AudioDir)

	var remoteStore outbound.RemoteArtifactStorePort
	if storageTarget, err := config.GetStorageTarget(); err != nil {
		zeroLogger.Warn("Object storage not configured, remote mirroring disabled: " + err.Error())
	} else {
		remoteStore, err = adapters.NewS3ArtifactStore(storageTarget)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build object storage client")
		}
	}

	audioProducer := services.NewAudioProducer(zeroLogger, workerPool, synthesizer)

	assembler := services.NewPodcastAssembler(zeroLogger, audioProducer, localStore, remoteStore)

	stageController := controllers.NewPodcastStageController(zeroLogger, conversationGenerator, assembler, localStore, serverConfig.BaseURL)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	stageController.RegisterRoutes(router)

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}

// buildDialogueStreamer picks the generation implementation once at startup:
// the real provider when credentials exist, the mock under MOCK_PROVIDERS,
// and otherwise a stand-in that reports the missing configuration at stage
// time instead of refusing to boot.
func buildDialogueStreamer(workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.DialogueStreamerPort {
	if os.Getenv("MOCK_PROVIDERS") == "true" {
		logger.Warn("MOCK_PROVIDERS enabled, using canned dialogue generation")
		return mockproviders.NewDialogueStreamer(workerPool, logger)
	}

	gptConfig, err := config.GetGptConfig()
	if err != nil {
		logger.Warn("Generation provider not configured: " + err.Error())
		return adapters.NewUnconfiguredDialogueStreamer()
	}
	return adapters.NewGptDialogueStreamer(gptConfig, workerPool, logger)
}

func buildSynthesizer(contentFetcher adapters.ContentFetcher, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	if os.Getenv("MOCK_PROVIDERS") == "true" {
		logger.Warn("MOCK_PROVIDERS enabled, using fake speech synthesis")
		return mockproviders.NewSpeechSynthesizer(logger)
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		logger.Warn("Synthesis provider not configured: " + err.Error())
		return adapters.NewUnconfiguredSpeechSynthesizer()
	}
	return adapters.NewElevenLabsSynthesizer(contentFetcher, elevenLabsConfig)
}
