package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	_ "github.com/pinot-dbapi/gopinotdb"
)

func main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dsn := os.Getenv("PINOT_DSN")
	if dsn == "" {
		dsn = "pinot://localhost:8099/query/sql"
	}
	db, err := sql.Open("pinot", dsn)
	if err != nil {
		log.Fatalf("failed to connect. %v, err: %v", dsn, err)
	}
	defer db.Close()

	query := "SELECT 1 FROM airlineStats LIMIT 1"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		log.Fatalf("failed to run a query. %v, err: %v", query, err)
	}
	defer rows.Close()
	var v int
	for rows.Next() {
		if err := rows.Scan(&v); err != nil {
			log.Fatalf("failed to get result. err: %v", err)
		}
		if v != 1 {
			log.Fatalf("failed to get 1. got: %v", v)
		}
	}
	if rows.Err() != nil {
		fmt.Printf("ERROR: %v\n", rows.Err())
		return
	}
	fmt.Printf("Congrats! You have successfully run %v with Pinot!\n", query)
}
