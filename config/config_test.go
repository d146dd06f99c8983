package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceConsumerGroupIsUniquePerInstance(t *testing.T) {
	kafka := KafkaConfig{ConsumerGroup: "frutbras-service-group"}

	a := kafka.InstanceConsumerGroup()
	b := kafka.InstanceConsumerGroup()

	assert.True(t, strings.HasPrefix(a, "frutbras-service-group-"))
	assert.True(t, strings.HasPrefix(b, "frutbras-service-group-"))
	assert.NotEqual(t, a, b)
}
