package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"bayes-go/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ClassifierServer exposes the classifier as MCP tools
type ClassifierServer struct {
	server     *mcp.Server
	classifier *service.Classifier
	logger     *zap.Logger
	handler    *mcp.StreamableHTTPHandler
}

type TrainParams struct {
	Category string `json:"category" jsonschema:"the category to train or untrain"`
	Text     string `json:"text" jsonschema:"the sample text"`
}

type TextParams struct {
	Text string `json:"text" jsonschema:"the text to score or classify"`
}

type EmptyParams struct{}

func NewClassifierServer(classifier *service.Classifier, version string, logger *zap.Logger) *ClassifierServer {
	server := &ClassifierServer{
		classifier: classifier,
		logger:     logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "SimpleBayes",
		Version: version,
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "train",
		Description: "Train a category with a sample of text. Creates the category if it does not exist. Returns every category summary",
	}, server.handleTrain)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "untrain",
		Description: "Remove a sample of text from a category. Token counts never go below zero. Returns every category summary",
	}, server.handleUntrain)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "score",
		Description: "Score text against every category. Returns a map of category to score, omitting categories that scored zero",
	}, server.handleScore)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "classify",
		Description: "Return the best matching category for text and its score. The category is empty when nothing matched",
	}, server.handleClassify)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "info",
		Description: "List every category with its token tally and prior probabilities",
	}, server.handleInfo)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "flush",
		Description: "Remove every category",
	}, server.handleFlush)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

// Handler returns the streamable HTTP transport for the server
func (s *ClassifierServer) Handler() http.Handler {
	return s.handler
}

func (s *ClassifierServer) handleTrain(ctx context.Context, req *mcp.CallToolRequest, args TrainParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling train request", zap.String("category", args.Category))

	if err := s.classifier.Train(args.Category, args.Text); err != nil {
		s.logger.Warn("Failed to train", zap.String("category", args.Category), zap.Error(err))
		return textResult(fmt.Sprintf("Failed to train category: %v", err)), nil, nil
	}
	return jsonResult(s.classifier.Summaries()), nil, nil
}

func (s *ClassifierServer) handleUntrain(ctx context.Context, req *mcp.CallToolRequest, args TrainParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling untrain request", zap.String("category", args.Category))

	if err := s.classifier.Untrain(args.Category, args.Text); err != nil {
		s.logger.Warn("Failed to untrain", zap.String("category", args.Category), zap.Error(err))
		return textResult(fmt.Sprintf("Failed to untrain category: %v", err)), nil, nil
	}
	return jsonResult(s.classifier.Summaries()), nil, nil
}

func (s *ClassifierServer) handleScore(ctx context.Context, req *mcp.CallToolRequest, args TextParams) (*mcp.CallToolResult, any, error) {
	return jsonResult(s.classifier.Score(args.Text)), nil, nil
}

func (s *ClassifierServer) handleClassify(ctx context.Context, req *mcp.CallToolRequest, args TextParams) (*mcp.CallToolResult, any, error) {
	return jsonResult(s.classifier.ClassifyResult(args.Text)), nil, nil
}

func (s *ClassifierServer) handleInfo(ctx context.Context, req *mcp.CallToolRequest, args EmptyParams) (*mcp.CallToolResult, any, error) {
	return jsonResult(s.classifier.Summaries()), nil, nil
}

func (s *ClassifierServer) handleFlush(ctx context.Context, req *mcp.CallToolRequest, args EmptyParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling flush request")
	s.classifier.Flush()
	return textResult("Flushed all categories"), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textResult(fmt.Sprintf("Failed to encode result: %v", err))
	}
	return textResult(string(data))
}
