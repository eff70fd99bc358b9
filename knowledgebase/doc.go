// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package knowledgebase lists the Bedrock knowledge bases usable for retrieval.
//
// A knowledge base is usable when it is a VECTOR knowledge base and the first data source
// attached to it holds at least one document.
package knowledgebase
