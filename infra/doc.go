// Package infra contains technical adapters such as external API clients,
// model loaders, record stores and metrics exporters. These packages
// should depend only on the interfaces defined in the core packages.
package infra
