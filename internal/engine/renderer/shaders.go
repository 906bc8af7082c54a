package renderer

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	// models only rotate, so the upper 3x3 is a valid normal matrix
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uViewProj * uModel * vec4(aPosition, 1.0);
}
`

const meshFragmentShader = `
#version 410 core

const int MAX_LIGHTS = 2;
const float PI = 3.14159265;

in vec3 vNormal;

uniform vec3 uColor;
uniform float uOpacity;
uniform float uMetalness;
uniform float uRoughness;

uniform float uAmbient;
uniform int uLightCount;
uniform vec3 uLightDir[MAX_LIGHTS];
uniform float uLightIntensity[MAX_LIGHTS];
uniform vec3 uViewDir;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	vec3 v = normalize(uViewDir);

	vec3 diffuse = uColor * (1.0 - uMetalness);
	vec3 specular = mix(vec3(0.04), uColor, uMetalness);
	float a = max(uRoughness * uRoughness, 0.01);
	float shininess = 2.0 / (a * a) - 2.0;

	vec3 color = uColor * uAmbient;
	for (int i = 0; i < MAX_LIGHTS; i++) {
		if (i >= uLightCount) {
			break;
		}
		vec3 l = normalize(uLightDir[i]);
		float ndl = max(dot(n, l), 0.0);
		vec3 h = normalize(l + v);
		float spec = pow(max(dot(n, h), 0.0), shininess) * (shininess + 8.0) / (8.0 * PI);
		color += (diffuse + specular * spec) * ndl * uLightIntensity[i];
	}

	FragColor = vec4(color, uOpacity);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`
