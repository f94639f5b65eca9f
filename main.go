package main

import (
	"fmt"
	"os"

	"github.com/hdt3213/minidis/config"
	database2 "github.com/hdt3213/minidis/database"
	"github.com/hdt3213/minidis/gnet"
	"github.com/hdt3213/minidis/lib/logger"
	RedisServer "github.com/hdt3213/minidis/redis/server"
	"github.com/hdt3213/minidis/tcp"
	gnetv2 "github.com/panjf2000/gnet/v2"
)

var banner = `
    __  ____       _     ___
   /  |/  (_)___  (_)___/ (_)____
  / /|_/ / / __ \/ / __  / / ___/
 / /  / / / / / / / /_/ / (__  )
/_/  /_/_/_/ /_/_/\__,_/_/____/
`

func main() {
	print(banner)
	logger.Setup(&logger.Settings{
		Path:       "logs",
		Name:       "minidis",
		Ext:        "log",
		TimeFormat: "2006-01-02",
	})
	config.Setup(os.Getenv("CONFIG"))
	listenAddr := fmt.Sprintf("%s:%d", config.Properties.Bind, config.Properties.Port)

	db := database2.NewStandaloneServer()
	if config.Properties.UseGnet {
		server := gnet.NewGnetServer(db)
		err := gnetv2.Run(server, "tcp://"+listenAddr, gnetv2.WithMulticore(true))
		if err != nil {
			logger.Errorf("start server failed: %v", err)
		}
		return
	}

	closeChan := make(chan struct{}, 1)
	handler := RedisServer.MakeHandler(db, closeChan)
	err := tcp.ListenAndServeWithSignal(&tcp.Config{
		Address: listenAddr,
	}, handler, closeChan)
	if err != nil {
		logger.Error(err)
	}
}
