// Package generation provides the resilient LLM invocation layer that
// turns a product description into a structured GTM playbook. It owns
// provider registry construction, prompt assembly, ordered failover
// across vendors behind one shared deadline, and extraction of the strict
// JSON playbook from free-form model output. Concrete vendor adapters
// live under internal/platform and implement the Invoker interface; this
// package never depends on vendor SDKs directly.
package generation
