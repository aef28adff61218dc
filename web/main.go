package main

import (
	"flag"
	"log"
	"os"

	"github.com/kavehsim/lumensim/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("lumensim demo server")
	log.Printf("Visit http://localhost:%d to explore light-transport demos", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
