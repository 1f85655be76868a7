/*
Package ports defines the driven ports (interfaces) for the Provisio engine.

These interfaces decouple the conversation core from external implementations,
allowing the engine to work with various session stores, provisioning backends,
and code generators.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading conversation Sessions.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - Provisioner: Executes resource creation after the user confirms a configuration.
  - CodeGenerator: Renders a confirmed configuration as infrastructure code.
  - CostEstimator: Produces a monthly cost estimate for a configuration.
*/
package ports
