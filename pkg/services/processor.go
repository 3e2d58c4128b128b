package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/ai"
	"github.com/homescribe/homescribe-engine/pkg/apperrors"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/storage"
	"github.com/homescribe/homescribe-engine/pkg/transcription"
)

// ProcessingResult is the output of one pipeline run over an audio file.
type ProcessingResult struct {
	Transcript string
	Summary    string
	Assessment *models.OasisAssessment
}

// AudioProcessor runs the transcribe → summarize+extract pipeline.
type AudioProcessor interface {
	Process(ctx context.Context, audioPath string) (*ProcessingResult, error)
}

// audioProcessor implements AudioProcessor.
//
// Transcription is a blocking prerequisite: if it fails or yields empty
// text the whole pipeline fails, because both downstream steps need the
// transcript. Once a transcript exists, summarization and extraction run
// concurrently and either may fail without failing the pipeline — uploaded
// audio is costly to re-obtain, so a degraded persisted note beats a loud
// failure.
type audioProcessor struct {
	transcriber transcription.Transcriber
	llm         ai.ExtractionClient
	store       *storage.AudioStore
	logger      *zap.Logger
}

// NewAudioProcessor creates a new audio processor.
func NewAudioProcessor(transcriber transcription.Transcriber, llm ai.ExtractionClient, store *storage.AudioStore, logger *zap.Logger) AudioProcessor {
	return &audioProcessor{
		transcriber: transcriber,
		llm:         llm,
		store:       store,
		logger:      logger.Named("processor"),
	}
}

// Process transcribes the stored audio file, then fans out summarization and
// extraction over the transcript and reconciles their results.
func (p *audioProcessor) Process(ctx context.Context, audioPath string) (*ProcessingResult, error) {
	audio, err := p.store.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTranscriptionFailed, err)
	}
	defer func() { _ = audio.Close() }()

	transcript, err := p.transcriber.Transcribe(ctx, audio, filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if transcript == "" {
		return nil, fmt.Errorf("%w: transcript is empty", apperrors.ErrTranscriptionFailed)
	}

	// The two enrichment calls are independent given the transcript, so
	// they run concurrently.
	var (
		wg         sync.WaitGroup
		summary    string
		summaryErr error
		assessment *models.OasisAssessment
		extractErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, summaryErr = p.llm.Summarize(ctx, transcript)
	}()
	go func() {
		defer wg.Done()
		assessment, extractErr = p.llm.ExtractAssessment(ctx, transcript)
	}()
	wg.Wait()

	if summaryErr != nil {
		p.logger.Warn("Summarization failed, continuing with empty summary", zap.Error(summaryErr))
		summary = ""
	}
	if extractErr != nil {
		p.logger.Warn("Extraction failed, assigning fallback assessment", zap.Error(extractErr))
		assessment = models.FallbackAssessment()
	}

	p.logger.Info("Audio processing completed",
		zap.Int("transcript_len", len(transcript)),
		zap.Bool("summary_degraded", summaryErr != nil),
		zap.Bool("assessment_degraded", extractErr != nil))

	return &ProcessingResult{
		Transcript: transcript,
		Summary:    summary,
		Assessment: assessment,
	}, nil
}

// Ensure audioProcessor implements AudioProcessor at compile time.
var _ AudioProcessor = (*audioProcessor)(nil)
