package main

import (
	"github.com/OrionRobotic/GitLife/internal/repository"
	"github.com/OrionRobotic/GitLife/pkg/logger"
)

func main() {
	logger.Init()
	defer logger.Sync()

	repository.RunGenerate()
}
