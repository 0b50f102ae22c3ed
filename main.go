package main

import (
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/env"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/output"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/task"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "macroflow")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("bad log level %s", *logLevel)
	}

	// 加载配置：文件路径与Base64数据二选一
	var configBytes []byte
	var err error
	switch {
	case *configPath != "":
		if configBytes, err = os.ReadFile(*configPath); err != nil {
			log.Panicf("failed to read config file: %v", err)
		}
	case *configData != "":
		if configBytes, err = base64.StdEncoding.DecodeString(*configData); err != nil {
			log.Panicf("failed to decode config data: %v", err)
		}
	default:
		log.Panicf("either -config or -config-data is required")
	}
	var c config.Config
	if err := yaml.Unmarshal(configBytes, &c); err != nil {
		log.Panicf("failed to parse config: %v", err)
	}
	rc := config.NewRuntimeConfig(c)

	// 构造环境
	params, err := env.FromConfig(rc)
	if err != nil {
		log.Panicf("%v", err)
	}
	e, err := env.New(params)
	if err != nil {
		log.Panicf("%v", err)
	}

	// 构造输出目标
	var sinks []task.StepSink
	if rc.All.Output.Emission != "" {
		emission, err := output.NewEmission(rc.All.Output.Emission)
		if err != nil {
			log.Panicf("%v", err)
		}
		sinks = append(sinks, emission)
	}
	if rc.All.Output.URI != "" {
		sink, err := output.NewMongoSink(rc.All.Output.URI, rc.All.Output.DB, rc.All.Output.Col)
		if err != nil {
			log.Panicf("%v", err)
		}
		sinks = append(sinks, sink)
	}

	// 运行实验
	exp, err := task.New(e, rc.All.Experiment, sinks...)
	if err != nil {
		log.Panicf("%v", err)
	}
	summary, err := exp.Run()
	if err != nil {
		log.Panicf("%v", err)
	}
	for _, sink := range sinks {
		if err := sink.Close(); err != nil {
			log.Errorf("failed to close sink: %v", err)
		}
	}

	log.Infof(
		"experiment complete: %d runs, return %f±%f, mean speed %f",
		len(summary.Returns), summary.MeanReturn, summary.StdReturn, summary.MeanSpeed,
	)
}
