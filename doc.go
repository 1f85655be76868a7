/*
Package provisio is a conversation-driven engine for provisioning Azure
resources. A user walks through a guided dialogue (resource type,
subscription, resource group, region, per-resource settings), reviews a cost
estimate, and either receives generated Terraform or dispatches the creation
to a provisioner backend.

# Concept

The engine is a deterministic state machine over persisted sessions. Each
turn takes one user message, advances the session's state, and returns the
next prompt. The core owns no I/O beyond the session store and the final
generator/provisioner call; transports (HTTP, MCP, CLI) are thin adapters
around the same engine. This keeps every interface byte-identical in
behavior and makes the dialogue fully testable without a network.

# Key Features

  - Guided flows for eight Azure resource types, each a declarative list of
    steps with defaults, menus, and validators.
  - Cost estimates at confirmation time, with a per-component breakdown.
  - Terraform generation as a first-class alternative to direct creation.
  - Pluggable session stores (in-memory, Redis) with per-session locking.
  - Pluggable provisioner backends; a simulator ships by default.

# Usage

Initialize the engine, start a session, and feed it messages. Run handles
the execute follow-up for confirmed creations automatically.

	package main

	import (
		"bufio"
		"context"
		"fmt"
		"os"

		"github.com/provisio/provisio"
	)

	func main() {
		eng, err := provisio.New()
		if err != nil {
			panic(err)
		}

		ctx := context.Background()
		welcome, err := eng.StartSession(ctx)
		if err != nil {
			panic(err)
		}
		fmt.Println(welcome.Message)

		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			turns, err := eng.Run(ctx, welcome.SessionID, sc.Text())
			if err != nil {
				panic(err)
			}
			for _, t := range turns {
				fmt.Println(t.Message)
			}
		}
	}
*/
package provisio
