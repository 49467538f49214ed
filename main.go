package main

import (
	"github.com/snakecharmers/boabot/bot"
	"github.com/snakecharmers/boabot/config"
	"github.com/snakecharmers/boabot/interview"
	"github.com/snakecharmers/boabot/pkg/log"
	"github.com/snakecharmers/boabot/platform/telegram"
	"github.com/snakecharmers/boabot/ticket"
	"github.com/snakecharmers/boabot/webserver/router"
)

func main() {
	conf := config.GetConfig()
	itv := config.GetInterview()

	registry, err := ticket.NewRegistry()
	if err != nil {
		log.Fatal("init ticket registry: %v", err)
	}
	log.Info("ticket registry initialized, %v questions configured", len(itv.Questions))

	go func() {
		if err := router.Run(registry, conf.Address); err != nil {
			log.Fatal("webserver: %v", err)
		}
	}()

	tg, err := telegram.New(conf.BotToken)
	if err != nil {
		log.Fatal("bot: %v", err)
	}
	sequencer := interview.NewSequencer(itv.Questions, interview.Texts{
		OpenQuestion:   itv.Text.OpenQuestion,
		SingleChoice:   itv.Text.SingleChoice,
		MultipleChoice: itv.Text.MultipleChoice,
	}, registry, tg)
	r := bot.New(tg, registry, sequencer)
	r.Start(itv.ChannelID)
	tg.Run(r)
}
