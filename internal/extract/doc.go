// Package extract implements the decision extraction core: paragraph-aware
// chunking, LLM-based candidate detection, two-stage decision synthesis,
// and citation grounding against verbatim source text.
package extract
