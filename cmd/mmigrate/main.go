// mmigrate migrates Mattermost integrations (incoming webhooks, outgoing
// webhooks, bot accounts) between servers via export and import.
package main

import "github.com/svelle/mattermost-integration-migration/pkg/cli"

func main() {
	cli.Execute()
}
