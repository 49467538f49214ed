package config

import (
	log2 "log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/stevenroose/gonfig"
	"gopkg.in/yaml.v2"

	"github.com/snakecharmers/boabot/common"
	"github.com/snakecharmers/boabot/db"
	"github.com/snakecharmers/boabot/interview"
	"github.com/snakecharmers/boabot/model"
	"github.com/snakecharmers/boabot/pkg/log"
)

type Params struct {
	Address             string `id:"address" short:"a" default:"0.0.0.0:8172" desc:"Ops API listening address"`
	Config              string `id:"config" short:"c" default:"$HOME/.config/boabot" desc:"boabot configuration directory"`
	BotToken            string `id:"bot-token" desc:"Telegram bot token"`
	Interview           string `id:"interview" default:"interview.yaml" desc:"Interview definition file; relative paths resolve against the configuration directory"`
	LogLevel            string `id:"log-level" default:"info" desc:"Optional values: trace, debug, info, warn or error"`
	LogFile             string `id:"log-file" desc:"The path of log file"`
	LogMaxDays          int64  `id:"log-max-days" default:"3" desc:"Maximum number of days to keep log files"`
	LogDisableColor     bool   `id:"log-disable-color"`
	LogDisableTimestamp bool   `id:"log-disable-timestamp"`
}

// Interview is the static questionnaire definition: the channel carrying the
// intake button, the ordered question list, and the fixed text fragments
// appended to prompts per question type.
type Interview struct {
	ChannelID int64            `yaml:"channel_id"`
	Questions []model.Question `yaml:"player_questions"`
	Text      BotText          `yaml:"bot_text"`
}

type BotText struct {
	OpenQuestion   string `yaml:"open_question"`
	SingleChoice   string `yaml:"single_choice"`
	MultipleChoice string `yaml:"multiple_choice"`
}

var (
	params        Params
	interviewConf Interview
	once          sync.Once
)

func initFunc() {
	err := gonfig.Load(&params, gonfig.Conf{
		FileDisable:       true,
		FlagIgnoreUnknown: false,
		EnvPrefix:         "BOABOT_",
	})
	if err != nil {
		if err.Error() != "unexpected word while parsing flags: '-test.v'" {
			log2.Fatal(err)
		}
	}
	params.Config, err = common.HomeExpand(params.Config)
	if err != nil {
		log2.Fatal(err)
	}
	params.LogFile, err = common.HomeExpand(params.LogFile)
	if err != nil {
		log2.Fatal(err)
	}
	if strings.Contains(params.Config, "$HOME") {
		if h, err := os.UserHomeDir(); err == nil {
			params.Config = strings.ReplaceAll(params.Config, "$HOME", h)
		}
	}
	if err := os.MkdirAll(params.Config, 0700); err != nil {
		log2.Fatal(err)
	}
	logWay := "console"
	if params.LogFile != "" {
		logWay = "file"
	}
	log.InitLog(logWay, params.LogFile, params.LogLevel, params.LogMaxDays, params.LogDisableColor, params.LogDisableTimestamp)
	db.InitDB(params.Config)
	loadInterview()
}

func loadInterview() {
	path := params.Interview
	if !filepath.IsAbs(path) {
		path = filepath.Join(params.Config, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log2.Fatalf("read interview file: %v", err)
	}
	if err := yaml.Unmarshal(b, &interviewConf); err != nil {
		log2.Fatalf("parse interview file %v: %v", path, err)
	}
	if err := interview.ValidateQuestions(interviewConf.Questions); err != nil {
		log2.Fatalf("invalid interview file %v: %v", path, err)
	}
}

func GetConfig() *Params {
	once.Do(initFunc)
	return &params
}

func GetInterview() *Interview {
	once.Do(initFunc)
	return &interviewConf
}
