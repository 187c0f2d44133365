package render

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matNormal) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS shades with one directional light, ambient and Blinn-Phong specular. When
	// useTexture is set the albedo map tints colDiffuse.
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
uniform float useTexture;
uniform vec3 emissive;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  if (useTexture > 0.5) {
    tint *= texture(texture0, fragTexCoord);
  }
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  if (!gl_FrontFacing) {
    N = -N;
  }
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular + emissive, tint.a);
}
`
)

var (
	defaultAmbient    = [4]float32{0.25, 0.27, 0.3, 1.0}
	defaultLightColor = [3]float32{1.0, 0.98, 0.95}
	defaultLightDir   = [3]float32{0.5, 1, 0.3}
)

const (
	defaultLightIntensity   = float32(0.8)
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.3)
)
