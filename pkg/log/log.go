package log

import (
	"sync"

	"github.com/go-logr/logr"
	"k8s.io/klog/v2/klogr"

	"github.com/IlyaVysokikh/MathStatLib/pkg/consts"
)

var (
	once   sync.Once
	logger logr.Logger
)

// Logger returns the process wide logger.
func Logger() logr.Logger {
	once.Do(func() {
		logger = klogr.New().WithName(consts.AppName)
	})

	return logger
}
